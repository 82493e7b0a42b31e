package gpu

import (
	"fmt"

	"github.com/BellumGames/MultiMediaLab/pulse"
	"github.com/oliverbestmann/webgpu/wgpu"
)

// Buffer keeps a copy of its content in memory. Locking hands out the
// copy, unlocking uploads the locked range to the gpu buffer. Index
// buffers are never uploaded, draw calls expand them first.
type Buffer struct {
	queue *wgpu.Queue
	gpu   *wgpu.Buffer

	format pulse.Format

	// padded to a multiple of four bytes
	data   []byte
	length uint32

	locked    bool
	lockStart uint32
	lockEnd   uint32
}

var (
	_ pulse.VertexBuffer = (*Buffer)(nil)
	_ pulse.IndexBuffer  = (*Buffer)(nil)
)

func alignUp(value uint32) uint32 {
	return (value + 3) &^ 3
}

func (b *Buffer) Lock(offset, size uint32) ([]byte, error) {
	if b.data == nil {
		return nil, fmt.Errorf("buffer was released")
	}

	if b.locked {
		return nil, fmt.Errorf("buffer is already locked")
	}

	end := offset + size
	if size == 0 {
		end = b.length
	}

	if offset > b.length || end > b.length || end < offset {
		return nil, fmt.Errorf("lock range [%d, %d) exceeds buffer of %d bytes", offset, end, b.length)
	}

	b.locked = true
	b.lockStart = offset
	b.lockEnd = end

	return b.data[offset:end:end], nil
}

func (b *Buffer) Unlock() error {
	if !b.locked {
		return fmt.Errorf("buffer is not locked")
	}

	b.locked = false

	if b.gpu == nil {
		return nil
	}

	// writes must be aligned to four bytes
	start := b.lockStart &^ 3
	end := alignUp(b.lockEnd)

	if err := b.queue.WriteBuffer(b.gpu, uint64(start), b.data[start:end]); err != nil {
		return fmt.Errorf("upload buffer: %w", err)
	}

	return nil
}

func (b *Buffer) Release() {
	if b.gpu != nil {
		b.gpu.Release()
		b.gpu = nil
	}

	b.data = nil
}

func (b *Buffer) usable() error {
	switch {
	case b.data == nil:
		return fmt.Errorf("buffer was released")
	case b.locked:
		return fmt.Errorf("buffer is locked")
	}

	return nil
}
