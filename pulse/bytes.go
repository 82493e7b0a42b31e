package pulse

import "unsafe"

// AsByteSlice returns the memory of value as a byte slice. T must have a
// host compatible layout.
func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}
