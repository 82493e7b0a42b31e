//go:build windows

package dx9

import (
	"unsafe"

	"github.com/gonutz/d3d9"
)

// lockedMemory turns the memory of a locked buffer into a byte slice.
// The slice is only valid until the buffer is unlocked.
func lockedMemory(ptr uintptr, size int) []byte {
	if ptr == 0 || size == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), size)
}

type VertexBuffer struct {
	buffer *d3d9.VertexBuffer
}

func (b *VertexBuffer) Lock(offset, size uint32) ([]byte, error) {
	mem, err := b.buffer.Lock(uint(offset), uint(size), 0)
	if err != nil {
		return nil, err
	}

	return lockedMemory(mem.Memory, mem.Size), nil
}

func (b *VertexBuffer) Unlock() error {
	return b.buffer.Unlock()
}

func (b *VertexBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}

type IndexBuffer struct {
	buffer *d3d9.IndexBuffer
}

func (b *IndexBuffer) Lock(offset, size uint32) ([]byte, error) {
	mem, err := b.buffer.Lock(uint(offset), uint(size), 0)
	if err != nil {
		return nil, err
	}

	return lockedMemory(mem.Memory, mem.Size), nil
}

func (b *IndexBuffer) Unlock() error {
	return b.buffer.Unlock()
}

func (b *IndexBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
}
