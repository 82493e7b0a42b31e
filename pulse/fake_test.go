package pulse

import (
	"errors"
	"fmt"

	"github.com/BellumGames/MultiMediaLab/glm"
)

var errInjected = errors.New("injected failure")

// recorder logs all calls made against the fake factory, device and
// buffers in a single ordered list and injects errors into calls.
type recorder struct {
	calls []string
	fail  map[string]error
}

func newRecorder(failing ...string) *recorder {
	rec := &recorder{fail: map[string]error{}}
	for _, call := range failing {
		rec.fail[call] = errInjected
	}

	return rec
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	return r.fail[call]
}

func (r *recorder) count(call string) int {
	var n int
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}

	return n
}

func (r *recorder) reset() {
	r.calls = nil
}

type fakeWindow struct{}

func (fakeWindow) Size() (uint32, uint32) {
	return 300, 300
}

type fakeFactory struct {
	rec    *recorder
	params []PresentParameters
	device *fakeDevice
}

func (f *fakeFactory) CreateDevice(typ DeviceType, window Window, flags CreateFlags, params PresentParameters) (Device, error) {
	f.params = append(f.params, params)

	if err := f.rec.record(fmt.Sprintf("CreateDevice(%s)", typ)); err != nil {
		return nil, err
	}

	f.device = &fakeDevice{
		rec:          f.rec,
		renderStates: map[RenderState]uint32{},
		transforms:   map[TransformState]glm.Mat4f{},
	}

	return f.device, nil
}

func (f *fakeFactory) Release() {
	_ = f.rec.record("Release(factory)")
}

type drawCall struct {
	typ            PrimitiveType
	baseVertex     int32
	minIndex       uint32
	numVertices    uint32
	startIndex     uint32
	primitiveCount uint32
}

type fakeDevice struct {
	rec *recorder

	renderStates map[RenderState]uint32
	transforms   map[TransformState]glm.Mat4f
	draws        []drawCall

	vertexBuffer *fakeBuffer
	indexBuffer  *fakeBuffer
	vertexFVF    FVF
	indexFormat  Format
}

func (d *fakeDevice) SetRenderState(state RenderState, value uint32) error {
	if err := d.rec.record(fmt.Sprintf("SetRenderState(%s)", state)); err != nil {
		return err
	}

	d.renderStates[state] = value
	return nil
}

func (d *fakeDevice) CreateVertexBuffer(length uint32, fvf FVF) (VertexBuffer, error) {
	if err := d.rec.record("CreateVertexBuffer"); err != nil {
		return nil, err
	}

	d.vertexFVF = fvf
	d.vertexBuffer = &fakeBuffer{rec: d.rec, name: "vb", data: make([]byte, length)}
	return d.vertexBuffer, nil
}

func (d *fakeDevice) CreateIndexBuffer(length uint32, format Format) (IndexBuffer, error) {
	if err := d.rec.record("CreateIndexBuffer"); err != nil {
		return nil, err
	}

	d.indexFormat = format
	d.indexBuffer = &fakeBuffer{rec: d.rec, name: "ib", data: make([]byte, length)}
	return d.indexBuffer, nil
}

func (d *fakeDevice) Clear(flags ClearFlags, color Color, z float32, stencil uint32) error {
	return d.rec.record("Clear")
}

func (d *fakeDevice) BeginScene() error {
	return d.rec.record("BeginScene")
}

func (d *fakeDevice) EndScene() error {
	return d.rec.record("EndScene")
}

func (d *fakeDevice) SetTransform(state TransformState, matrix glm.Mat4f) error {
	if err := d.rec.record(fmt.Sprintf("SetTransform(%s)", state)); err != nil {
		return err
	}

	d.transforms[state] = matrix
	return nil
}

func (d *fakeDevice) SetStreamSource(stream uint32, buffer VertexBuffer, offset, stride uint32) error {
	return d.rec.record(fmt.Sprintf("SetStreamSource(%d,%d)", stream, stride))
}

func (d *fakeDevice) SetFVF(fvf FVF) error {
	return d.rec.record("SetFVF")
}

func (d *fakeDevice) SetIndices(buffer IndexBuffer) error {
	return d.rec.record("SetIndices")
}

func (d *fakeDevice) DrawIndexedPrimitive(typ PrimitiveType, baseVertex int32, minIndex, numVertices, startIndex, primitiveCount uint32) error {
	if err := d.rec.record("DrawIndexedPrimitive"); err != nil {
		return err
	}

	d.draws = append(d.draws, drawCall{typ, baseVertex, minIndex, numVertices, startIndex, primitiveCount})
	return nil
}

func (d *fakeDevice) Present() error {
	return d.rec.record("Present")
}

func (d *fakeDevice) Release() {
	_ = d.rec.record("Release(device)")
}

type fakeBuffer struct {
	rec    *recorder
	name   string
	data   []byte
	locked bool
}

func (b *fakeBuffer) Lock(offset, size uint32) ([]byte, error) {
	if err := b.rec.record(fmt.Sprintf("Lock(%s)", b.name)); err != nil {
		return nil, err
	}

	if b.locked {
		return nil, errors.New("already locked")
	}

	b.locked = true
	return b.data[offset : offset+size], nil
}

func (b *fakeBuffer) Unlock() error {
	if err := b.rec.record(fmt.Sprintf("Unlock(%s)", b.name)); err != nil {
		return err
	}

	b.locked = false
	return nil
}

func (b *fakeBuffer) Release() {
	_ = b.rec.record(fmt.Sprintf("Release(%s)", b.name))
}
