package texture

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/lakeside/internal/engine/gpu"
	"github.com/Faultbox/lakeside/internal/logger"
)

// Status is the aggregate loading state of the manager.
type Status int

const (
	Idle Status = iota
	Loading
)

func (s Status) String() string {
	if s == Loading {
		return "loading"
	}
	return "idle"
}

// Handle is a texture that is always bindable. It starts as the 1x1 white
// placeholder; once its image decodes, the same GL name is refilled.
type Handle struct {
	ID   uint32
	Path string

	resolved bool
	err      error
}

// Resolved reports whether the decode finished, successfully or not.
func (h *Handle) Resolved() bool { return h.resolved }

// Err returns the decode error, if any. A failed handle keeps the placeholder.
func (h *Handle) Err() error { return h.err }

// Options configures a Manager.
type Options struct {
	MaxConcurrent int64 // parallel decodes, at least 1
	Mipmaps       bool
}

type decoded struct {
	handle *Handle
	img    *Image
	err    error
}

// Manager creates texture handles and applies decoded images. Load, Poll and
// Close must be called on the GL goroutine.
type Manager struct {
	dev     gpu.Device
	decoder Decoder
	opts    Options
	log     *zap.Logger

	sem     *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	results chan decoded

	handles  map[string]*Handle
	blank    *Handle
	pending  int
	onStatus func(Status)
}

var white = []byte{255, 255, 255, 255}

var errEmptyImage = errors.New("texture: empty image")

// NewManager returns a manager that decodes through decoder and uploads to dev.
func NewManager(dev gpu.Device, decoder Decoder, opts Options) *Manager {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		dev:     dev,
		decoder: decoder,
		opts:    opts,
		log:     logger.Named("texture"),
		sem:     semaphore.NewWeighted(opts.MaxConcurrent),
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan decoded, 16),
		handles: make(map[string]*Handle),
	}
}

// OnStatus registers a callback for Idle/Loading transitions. It runs on the
// goroutine that calls Load or Poll.
func (m *Manager) OnStatus(fn func(Status)) {
	m.onStatus = fn
}

// Status returns Loading while any decode is outstanding.
func (m *Manager) Status() Status {
	if m.pending > 0 {
		return Loading
	}
	return Idle
}

// Load returns a bindable handle for path. An empty path yields the shared
// placeholder. Repeated loads of one path share a handle.
func (m *Manager) Load(path string) *Handle {
	if path == "" {
		if m.blank == nil {
			m.blank = &Handle{ID: m.dev.NewTexture(1, 1, white), resolved: true}
		}
		return m.blank
	}
	if h, ok := m.handles[path]; ok {
		return h
	}

	h := &Handle{ID: m.dev.NewTexture(1, 1, white), Path: path}
	m.handles[path] = h

	m.pending++
	if m.pending == 1 {
		m.notify(Loading)
	}

	m.wg.Add(1)
	go m.decode(h)
	return h
}

func (m *Manager) decode(h *Handle) {
	defer m.wg.Done()

	if err := m.sem.Acquire(m.ctx, 1); err != nil {
		return
	}
	img, err := m.decoder.Decode(h.Path)
	m.sem.Release(1)

	select {
	case m.results <- decoded{handle: h, img: img, err: err}:
	case <-m.ctx.Done():
	}
}

// Poll applies every decode that has finished since the last call and
// returns how many handles resolved. Call once per frame.
func (m *Manager) Poll() int {
	n := 0
	for {
		select {
		case r := <-m.results:
			m.apply(r)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every outstanding decode is applied or ctx ends.
func (m *Manager) Wait(ctx context.Context) error {
	for m.pending > 0 {
		select {
		case r := <-m.results:
			m.apply(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Manager) apply(r decoded) {
	h := r.handle
	h.resolved = true

	switch {
	case r.err != nil:
		h.err = r.err
		m.log.Warn("texture decode failed, keeping placeholder", zap.String("path", h.Path), zap.Error(r.err))
	case r.img == nil || r.img.Width == 0 || r.img.Height == 0:
		h.err = errEmptyImage
		m.log.Warn("texture is empty, keeping placeholder", zap.String("path", h.Path))
	default:
		m.dev.ReplaceTexture(h.ID, r.img.Width, r.img.Height, r.img.Pix, m.opts.Mipmaps)
		m.log.Debug("texture uploaded", zap.String("path", h.Path), zap.Int("width", r.img.Width), zap.Int("height", r.img.Height))
	}

	m.pending--
	if m.pending == 0 {
		m.notify(Idle)
	}
}

func (m *Manager) notify(s Status) {
	if m.onStatus != nil {
		m.onStatus(s)
	}
}

// Close abandons outstanding decodes and deletes every texture.
func (m *Manager) Close() {
	m.cancel()
	m.wg.Wait()

	for _, h := range m.handles {
		m.dev.DeleteTexture(h.ID)
	}
	if m.blank != nil {
		m.dev.DeleteTexture(m.blank.ID)
	}
	m.handles = make(map[string]*Handle)
	m.blank = nil
	m.pending = 0
}
