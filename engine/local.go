package engine

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ferrix-io/locstream/errs"
	"github.com/ferrix-io/locstream/format"
)

// LocalEngine is a single-process Engine over an Arrow memory allocator.
//
// Each Allocate call reserves independent bookkeeping; bounds are assigned as
// [0, pointCount) since a local engine owns the whole point set. Key buffers
// are Arrow resizable buffers, so tests can run against a
// memory.CheckedAllocator to verify that every buffer is freed exactly once.
type LocalEngine struct {
	mem memory.Allocator
}

var _ Engine = (*LocalEngine)(nil)

// NewLocalEngine creates a LocalEngine on the given allocator.
// A nil allocator selects memory.DefaultAllocator.
func NewLocalEngine(mem memory.Allocator) *LocalEngine {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	return &LocalEngine{mem: mem}
}

// Allocate implements Engine.
func (e *LocalEngine) Allocate(pointCount int, cs format.CoordSys) (Handle, error) {
	if pointCount <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPointCount, pointCount)
	}
	if !cs.Valid() {
		return nil, fmt.Errorf("unsupported coordinate system: %d", cs)
	}

	st := &handleState{
		mem:     e.mem,
		count:   pointCount,
		cs:      cs,
		buffers: make(map[string]*memory.Buffer),
	}
	h := &LocalHandle{state: st, lower: 0, upper: pointCount}

	// Safety net for handles dropped without Release. The cleanup receives
	// the inner state, never the handle itself, so it cannot keep the handle
	// alive.
	runtime.AddCleanup(h, func(st *handleState) { st.release() }, st)

	return h, nil
}

// LocalHandle is the Handle implementation returned by LocalEngine.
type LocalHandle struct {
	state        *handleState
	lower, upper int
}

var _ Handle = (*LocalHandle)(nil)

// handleState holds the releasable part of a handle, separated from
// LocalHandle so the runtime cleanup can reference it independently.
type handleState struct {
	mem     memory.Allocator
	count   int
	cs      format.CoordSys
	buffers map[string]*memory.Buffer

	releaseOnce sync.Once
	released    atomic.Bool
}

func (st *handleState) release() {
	st.releaseOnce.Do(func() {
		st.released.Store(true)
		for _, buf := range st.buffers {
			buf.Release()
		}
		st.buffers = nil
	})
}

// Bounds implements Handle.
func (h *LocalHandle) Bounds() (lower, upper int) {
	return h.lower, h.upper
}

// RegisterKey implements Handle.
func (h *LocalHandle) RegisterKey(name string, kind format.TypeKind) error {
	if h.state.released.Load() {
		return fmt.Errorf("%w: register key %q", errs.ErrUseAfterRelease, name)
	}
	if kind.Size() == 0 {
		return fmt.Errorf("%w: key %q has unknown element kind", errs.ErrInvalidElementType, name)
	}
	if _, exists := h.state.buffers[name]; exists {
		return fmt.Errorf("%w: key %q", errs.ErrKeyAlreadyRegistered, name)
	}

	buf := memory.NewResizableBuffer(h.state.mem)
	buf.Resize(h.state.count * kind.Size())
	h.state.buffers[name] = buf

	return nil
}

// KeyBytes implements Handle.
func (h *LocalHandle) KeyBytes(name string) ([]byte, error) {
	if h.state.released.Load() {
		return nil, fmt.Errorf("%w: key %q", errs.ErrUseAfterRelease, name)
	}
	buf, ok := h.state.buffers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrKeyNotFound, name)
	}

	return buf.Bytes(), nil
}

// Released implements Handle.
func (h *LocalHandle) Released() bool {
	return h.state.released.Load()
}

// Release implements Handle.
func (h *LocalHandle) Release() {
	h.state.release()
}
