package go_mempool

import (
	"errors"
)

type ErrorCode byte

const (
	CodeSuccess ErrorCode = iota
	CodeFailure
	CodeAllocationFailure
	CodeNullArgument
	CodeLockFailure
	CodeInvalidGrowSize
	CodeFullPool
	CodeEmptyPool
	CodeInvalidAddress
	CodeInvalidSize
	CodePoolClosed
)

func (c ErrorCode) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeFailure:
		return "unknown failure"
	case CodeAllocationFailure:
		return "failed to allocate memory"
	case CodeNullArgument:
		return "required argument is missing"
	case CodeLockFailure:
		return "failed to acquire or release a pool lock"
	case CodeInvalidGrowSize:
		return "new capacity must be greater than the current capacity"
	case CodeFullPool:
		return "pool is full, more releases than acquires"
	case CodeEmptyPool:
		return "pool is empty, no free block left"
	case CodeInvalidAddress:
		return "address is not on loan from this pool"
	case CodeInvalidSize:
		return "block size and capacity must be greater than zero"
	case CodePoolClosed:
		return "pool is closed"
	default:
		return "unknown error code"
	}
}

type CustomError struct {
	error
	code ErrorCode
}

func (e CustomError) Code() ErrorCode {
	return e.code
}

func newError(code ErrorCode) CustomError {
	return CustomError{
		error: errors.New(code.String()),
		code:  code,
	}
}

var (
	ErrAllocationFailure = newError(CodeAllocationFailure)
	ErrNullArgument      = newError(CodeNullArgument)
	ErrLockFailure       = newError(CodeLockFailure)
	ErrInvalidGrowSize   = newError(CodeInvalidGrowSize)
	ErrFullPool          = newError(CodeFullPool)
	ErrEmptyPool         = newError(CodeEmptyPool)
	ErrInvalidAddress    = newError(CodeInvalidAddress)
	ErrInvalidSize       = newError(CodeInvalidSize)
	ErrPoolClosed        = newError(CodePoolClosed)
)

// CodeOf returns the code of the first pool error found in err's chain.
// A nil error is CodeSuccess, an error from outside the pool is CodeFailure.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return CodeSuccess
	}
	var ce CustomError
	if errors.As(err, &ce) {
		return ce.code
	}
	return CodeFailure
}
