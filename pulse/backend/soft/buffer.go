package soft

import (
	"fmt"

	"github.com/BellumGames/MultiMediaLab/pulse"
)

type bufferKind uint8

const (
	vertexBuffer bufferKind = iota
	indexBuffer
)

// Buffer is a vertex or index buffer in system memory. It can only be
// locked by one caller at a time.
type Buffer struct {
	kind   bufferKind
	fvf    pulse.FVF
	format pulse.Format

	data     []byte
	locked   bool
	released bool
}

var (
	_ pulse.VertexBuffer = (*Buffer)(nil)
	_ pulse.IndexBuffer  = (*Buffer)(nil)
)

// Lock returns size bytes of the buffer starting at offset. A size
// of zero locks everything up to the end of the buffer.
func (b *Buffer) Lock(offset, size uint32) ([]byte, error) {
	if b.released {
		return nil, ErrReleased
	}

	if b.locked {
		return nil, fmt.Errorf("%w: buffer is already locked", ErrInvalidCall)
	}

	length := uint64(len(b.data))

	end := uint64(offset) + uint64(size)
	if size == 0 {
		end = length
	}

	if uint64(offset) > length || end > length {
		return nil, fmt.Errorf("%w: lock range [%d, %d) exceeds buffer of %d bytes", ErrInvalidCall, offset, end, length)
	}

	b.locked = true

	return b.data[offset:end:end], nil
}

func (b *Buffer) Unlock() error {
	if b.released {
		return ErrReleased
	}

	if !b.locked {
		return fmt.Errorf("%w: buffer is not locked", ErrInvalidCall)
	}

	b.locked = false
	return nil
}

func (b *Buffer) Release() {
	b.released = true
	b.data = nil
}

func (b *Buffer) usable(kind bufferKind) error {
	switch {
	case b.released:
		return ErrReleased
	case b.locked:
		return fmt.Errorf("%w: buffer is locked", ErrInvalidCall)
	case b.kind != kind:
		return fmt.Errorf("%w: wrong buffer kind", ErrInvalidCall)
	}

	return nil
}

// indices decodes all 16 bit indices starting at the given index.
func (b *Buffer) indices(start uint32) ([]uint16, error) {
	if b.format != pulse.FormatIndex16 {
		return nil, fmt.Errorf("%w: index format %d is not supported", ErrInvalidCall, b.format)
	}

	offset := uint64(start) * 2
	if offset > uint64(len(b.data)) {
		return nil, fmt.Errorf("%w: start index %d is out of range", ErrInvalidCall, start)
	}

	return pulse.DecodeIndices16(b.data[offset:]), nil
}
