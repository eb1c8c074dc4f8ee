// Package engine fronts the external compute engine that owns the memory
// backing a location stream's key arrays.
//
// A location stream never allocates key storage itself: it asks an Engine for
// a Handle sized to its partition, registers keys on first write, and views
// the engine-owned buffers in place. The Handle must be released exactly once
// across every stream that references it; release is idempotent and a
// runtime cleanup acts as a safety net for handles that are never released
// explicitly.
package engine

import "github.com/ferrix-io/locstream/format"

// Engine allocates per-process bookkeeping for a partition of a global point
// set.
type Engine interface {
	// Allocate reserves engine state for pointCount points under the given
	// coordinate system and returns a handle exposing the partition's global
	// index bounds.
	Allocate(pointCount int, cs format.CoordSys) (Handle, error)
}

// Handle is an opaque reference to engine-owned memory and bookkeeping.
//
// All methods except Release and Released fail with errs.ErrUseAfterRelease
// once the handle has been released.
type Handle interface {
	// Bounds returns the half-open global index range [lower, upper) owned
	// by this process; upper-lower always equals the allocated point count.
	Bounds() (lower, upper int)

	// RegisterKey allocates an engine-owned, zeroed, contiguous buffer for a
	// named key of the given element kind.
	RegisterKey(name string, kind format.TypeKind) error

	// KeyBytes returns the live bytes of a registered key's buffer. The
	// returned slice aliases engine memory; writes through it are visible to
	// the engine immediately.
	KeyBytes(name string) ([]byte, error)

	// Released reports whether the handle has been released.
	Released() bool

	// Release frees all engine state owned by the handle. It is idempotent;
	// every call after the first is a no-op.
	Release()
}
