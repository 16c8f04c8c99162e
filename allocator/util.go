package allocator

import "go.uber.org/multierr"

// FreeAll returns every region to the allocator. It keeps going after a failure
// and reports all of them.
func FreeAll(a IAllocator, bufs ...[]byte) error {
	var err error
	for _, buf := range bufs {
		err = multierr.Append(err, a.Free(buf))
	}
	return err
}
