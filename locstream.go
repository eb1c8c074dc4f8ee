// Package locstream implements a location stream: an unordered set of
// spatial points carrying named, typed, equal-length attribute arrays, used
// as the source or destination of a regridding operation between a
// structured grid and a scattered point set.
//
// A LocStream owns one partition of a possibly distributed global point set.
// Key arrays (coordinates, masks, user fields) are backed by engine-owned
// contiguous memory and returned as live views, so in-place numeric updates
// are visible to the engine immediately.
//
// # Basic Usage
//
//	ls, _ := locstream.New(16,
//	    locstream.WithCoordSys(format.CoordSysSphDeg),
//	    locstream.WithName("observations"))
//	defer ls.Destroy()
//
//	_ = ls.Set(format.KeyLon, lons)   // []float64, registered on first write
//	_ = ls.Set(format.KeyLat, lats)
//	_ = ls.Set(format.KeyMask, mask)  // []int32
//
//	lon, _ := ls.Float64s(format.KeyLon) // aliased view, not a copy
//	lon[3] = 42.0                        // visible to the engine
//
// For a location stream's coordinates to be recognized by the regridding
// engine, coordinate keys must use the names mandated by the stream's
// coordinate system; see format.CoordKeys. Mask keys are 32-bit integers,
// coordinate keys are 64-bit floats.
//
// Note: a LocStream is NOT thread-safe. Parallelism is across processes
// (one partition per process), never across goroutines within one stream.
package locstream

import (
	"fmt"
	"sort"

	"github.com/ferrix-io/locstream/comm"
	"github.com/ferrix-io/locstream/engine"
	"github.com/ferrix-io/locstream/errs"
	"github.com/ferrix-io/locstream/format"
	"github.com/ferrix-io/locstream/internal/options"
)

// LocStream is a keyed container of equal-length typed arrays addressed by a
// contiguous local index range, wrapping one engine resource handle.
type LocStream struct {
	name     string
	size     int
	coordSys format.CoordSys

	// half-open global index range [lower, upper), upper-lower == size
	lower int
	upper int

	handle     engine.Handle
	ownsHandle bool
	finalized  bool

	comm comm.Comm
	keys map[string]*Key
}

type config struct {
	name     string
	coordSys format.CoordSys
	engine   engine.Engine
	comm     comm.Comm
}

// Option configures New.
type Option = options.Option[*config]

// WithName sets a user-friendly name for the stream.
func WithName(name string) Option {
	return options.NoError(func(c *config) {
		c.name = name
	})
}

// WithCoordSys sets the stream's coordinate system. The default is
// format.CoordSysCartesian.
func WithCoordSys(cs format.CoordSys) Option {
	return options.New(func(c *config) error {
		if !cs.Valid() {
			return fmt.Errorf("unsupported coordinate system: %d", cs)
		}
		c.coordSys = cs

		return nil
	})
}

// WithEngine sets the engine that backs key arrays. The default is a
// LocalEngine on the default Arrow allocator.
func WithEngine(e engine.Engine) Option {
	return options.NoError(func(c *config) {
		c.engine = e
	})
}

// WithComm sets the process-layout collaborator. The default is comm.Serial.
func WithComm(cm comm.Comm) Option {
	return options.NoError(func(c *config) {
		c.comm = cm
	})
}

// New creates a LocStream for pointCount local points.
//
// Engine allocation happens synchronously here, not on first use: the engine
// reserves its bookkeeping for the partition and reports the stream's global
// index bounds. Keys are registered lazily on first write via Set.
//
// Returns:
//   - *LocStream: New stream owning its engine handle
//   - error: errs.ErrInvalidPointCount, option errors, or engine allocation
//     failures
func New(pointCount int, opts ...Option) (*LocStream, error) {
	cfg := &config{
		coordSys: format.CoordSysCartesian,
		comm:     comm.Serial{},
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.engine == nil {
		cfg.engine = engine.NewLocalEngine(nil)
	}
	if pointCount <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPointCount, pointCount)
	}

	handle, err := cfg.engine.Allocate(pointCount, cfg.coordSys)
	if err != nil {
		return nil, err
	}
	lower, upper := handle.Bounds()

	return &LocStream{
		name:       cfg.name,
		size:       pointCount,
		coordSys:   cfg.coordSys,
		lower:      lower,
		upper:      upper,
		handle:     handle,
		ownsHandle: true,
		comm:       cfg.comm,
		keys:       make(map[string]*Key),
	}, nil
}

// Name returns the stream's user-friendly name.
func (s *LocStream) Name() string { return s.name }

// Size returns the local point count.
func (s *LocStream) Size() int { return s.size }

// CoordSys returns the stream's coordinate system.
func (s *LocStream) CoordSys() format.CoordSys { return s.coordSys }

// LowerBound returns the inclusive lower edge of this process's global index
// range.
func (s *LocStream) LowerBound() int { return s.lower }

// UpperBound returns the exclusive upper edge of this process's global index
// range. UpperBound()-LowerBound() always equals Size().
func (s *LocStream) UpperBound() int { return s.upper }

// Keys returns the stream's key names in sorted order.
func (s *LocStream) Keys() []string {
	names := make([]string, 0, len(s.keys))
	for name := range s.keys {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Has reports whether the stream holds a key with the given name.
func (s *LocStream) Has(name string) bool {
	_, ok := s.keys[name]
	return ok
}

// Destroyed reports whether Destroy has run on this stream.
func (s *LocStream) Destroyed() bool { return s.finalized }

// Destroy releases the engine state behind the stream.
//
// It is idempotent: the second and later calls are silent no-ops. Streams
// produced by Copy or Slice share the original's handle without owning it,
// so destroying them never releases the handle; only the owning stream does.
// The engine's own runtime cleanup remains a safety net, and explicit
// Destroy stays valid and cheap after it has fired.
func (s *LocStream) Destroy() {
	if s.finalized {
		return
	}
	if s.ownsHandle {
		s.handle.Release()
	}
	s.finalized = true
}

// Copy produces a shallow copy of the stream.
//
// The copy reuses the same engine handle without re-invoking the allocator
// and is tagged as non-owning: its Destroy never releases the shared handle.
// Scalar bookkeeping is copied by value and every key array is copied by
// value into the new instance's own storage, so mutating the copy's arrays
// does not touch the original's engine buffers.
func (s *LocStream) Copy() *LocStream {
	ret := &LocStream{
		name:       s.name,
		size:       s.size,
		coordSys:   s.coordSys,
		lower:      s.lower,
		upper:      s.upper,
		handle:     s.handle,
		ownsHandle: false,
		comm:       s.comm,
		keys:       make(map[string]*Key, len(s.keys)),
	}
	for name, k := range s.keys {
		ret.keys[name] = k.clone()
	}

	return ret
}

// Slice produces a new stream covering the half-open local index range
// [start, stop).
//
// Slicing is a serial-only operation: it fails with
// errs.ErrUnsupportedInParallel when more than one process is active, since
// collective slicing is not implemented and per-process results would
// silently diverge. The result is a shallow copy (see Copy) whose size is
// stop-start, whose bounds are narrowed to
// [lower+start, lower+start+newSize), and whose key arrays are independently
// re-sliced by value.
func (s *LocStream) Slice(start, stop int) (*LocStream, error) {
	if s.comm.Size() > 1 {
		return nil, fmt.Errorf("%w: slice requires a single-process run, have %d processes",
			errs.ErrUnsupportedInParallel, s.comm.Size())
	}
	if start < 0 || stop < start || stop > s.size {
		return nil, fmt.Errorf("%w: [%d, %d) of size %d", errs.ErrInvalidSliceRange, start, stop, s.size)
	}

	ret := s.Copy()
	ret.size = stop - start
	ret.lower = s.lower + start
	ret.upper = ret.lower + ret.size
	for name, k := range ret.keys {
		ret.keys[name] = k.sliced(start, stop)
	}

	return ret, nil
}

// String returns a printable representation of the stream.
func (s *LocStream) String() string {
	return fmt.Sprintf("LocStream{name: %q, coordSys: %s, size: %d, bounds: [%d, %d), keys: %v}",
		s.name, s.coordSys, s.size, s.lower, s.upper, s.Keys())
}
