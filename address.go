package go_mempool

import "fmt"

// Address locates one block as a (blob, offset) pair. The blob index is kept
// 1-based, so the zero value is the nil address.
type Address struct {
	blob   int
	offset int
}

func newAddress(blobIdx, offset int) Address {
	return Address{blob: blobIdx + 1, offset: offset}
}

func (a Address) IsNil() bool {
	return a.blob == 0
}

// Blob returns the index of the blob holding the block, or -1 for the nil address
func (a Address) Blob() int {
	return a.blob - 1
}

// Offset returns the byte offset of the block inside its blob
func (a Address) Offset() int {
	return a.offset
}

func (a Address) String() string {
	if a.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%d:%d", a.Blob(), a.offset)
}
