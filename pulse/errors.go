package pulse

import "errors"

var (
	// ErrInitializationFailed reports that no device could be created
	// or configured.
	ErrInitializationFailed = errors.New("initialization failed")

	// ErrResourceAllocationFailed reports that a device resource could
	// not be allocated.
	ErrResourceAllocationFailed = errors.New("resource allocation failed")

	// ErrBufferLockFailed reports that a buffer could not be locked for writing.
	ErrBufferLockFailed = errors.New("buffer lock failed")
)
