package gpu

// Fake is an in-memory Device that records calls. It is used by tests of
// the packages that upload resources.
type Fake struct {
	next uint32

	Buffers      map[uint32][]float32
	VertexArrays map[uint32][]Attribute
	Textures     map[uint32]FakeTexture
	Deleted      []uint32
}

// FakeTexture is the recorded state of a texture.
type FakeTexture struct {
	Width, Height int
	Pixels        []byte
	Mipmapped     bool
	Replacements  int
}

// NewFake returns an empty fake device.
func NewFake() *Fake {
	return &Fake{
		Buffers:      make(map[uint32][]float32),
		VertexArrays: make(map[uint32][]Attribute),
		Textures:     make(map[uint32]FakeTexture),
	}
}

var _ Device = (*Fake)(nil)

func (f *Fake) id() uint32 {
	f.next++
	return f.next
}

func (f *Fake) NewBuffer(data []float32) uint32 {
	id := f.id()
	f.Buffers[id] = append([]float32(nil), data...)
	return id
}

func (f *Fake) NewVertexArray(attrs []Attribute) uint32 {
	id := f.id()
	var kept []Attribute
	for _, a := range attrs {
		if a.Location >= 0 {
			kept = append(kept, a)
		}
	}
	f.VertexArrays[id] = kept
	return id
}

func (f *Fake) NewTexture(width, height int, rgba []byte) uint32 {
	id := f.id()
	f.Textures[id] = FakeTexture{Width: width, Height: height, Pixels: append([]byte(nil), rgba...)}
	return id
}

func (f *Fake) ReplaceTexture(tex uint32, width, height int, rgba []byte, mipmaps bool) {
	t := f.Textures[tex]
	t.Width, t.Height = width, height
	t.Pixels = append([]byte(nil), rgba...)
	t.Mipmapped = mipmaps
	t.Replacements++
	f.Textures[tex] = t
}

func (f *Fake) DeleteBuffer(buf uint32) {
	delete(f.Buffers, buf)
	f.Deleted = append(f.Deleted, buf)
}

func (f *Fake) DeleteVertexArray(vao uint32) {
	delete(f.VertexArrays, vao)
	f.Deleted = append(f.Deleted, vao)
}

func (f *Fake) DeleteTexture(tex uint32) {
	delete(f.Textures, tex)
	f.Deleted = append(f.Deleted, tex)
}
