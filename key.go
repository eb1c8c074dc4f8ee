package locstream

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/ferrix-io/locstream/errs"
	"github.com/ferrix-io/locstream/format"
)

// Key is a named, typed, fixed-length array attached to a location stream,
// one element per local point.
//
// On an owning stream the element slice is a live view over engine-owned
// memory; on a copy or slice it is stream-local storage. Exactly one of the
// typed slices is populated, matching Kind.
type Key struct {
	name string
	kind format.TypeKind
	f64  []float64
	i32  []int32
}

// Name returns the key's name.
func (k *Key) Name() string { return k.name }

// Kind returns the key's element kind.
func (k *Key) Kind() format.TypeKind { return k.kind }

// Len returns the key's element count.
func (k *Key) Len() int {
	if k.kind == format.TypeI4 {
		return len(k.i32)
	}

	return len(k.f64)
}

// Float64s returns the live float64 view, or nil for an integer key.
func (k *Key) Float64s() []float64 { return k.f64 }

// Int32s returns the live int32 view, or nil for a float key.
func (k *Key) Int32s() []int32 { return k.i32 }

// clone copies the key's array by value into new stream-local storage.
func (k *Key) clone() *Key {
	ret := &Key{name: k.name, kind: k.kind}
	if k.kind == format.TypeI4 {
		ret.i32 = append([]int32(nil), k.i32...)
	} else {
		ret.f64 = append([]float64(nil), k.f64...)
	}

	return ret
}

// sliced copies the [start, stop) sub-range by value into a new key.
func (k *Key) sliced(start, stop int) *Key {
	ret := &Key{name: k.name, kind: k.kind}
	if k.kind == format.TypeI4 {
		ret.i32 = append([]int32(nil), k.i32[start:stop]...)
	} else {
		ret.f64 = append([]float64(nil), k.f64[start:stop]...)
	}

	return ret
}

// Set writes a key's values, registering the key on first use.
//
// The element kind is inferred from the value type: []float64 stores R8,
// []int32 stores I4, and []int is coerced to I4 for convenience. The value
// length must equal Size(); on any validation error the store is left
// unchanged.
//
// Typing rules: the mask key must be integer typed, coordinate keys must be
// float typed, and a coordinate key must belong to the stream's coordinate
// system. Once a key exists, later writes must match its established kind.
//
// Returns:
//   - error: errs.ErrInvalidLength, errs.ErrInvalidElementType,
//     errs.ErrUnknownCoordinateKey, or errs.ErrUseAfterRelease after Destroy
func (s *LocStream) Set(name string, values any) error {
	if s.finalized {
		return fmt.Errorf("%w: set key %q on destroyed stream", errs.ErrUseAfterRelease, name)
	}

	switch v := values.(type) {
	case []float64:
		return s.setFloat64(name, v)
	case []int32:
		return s.setInt32(name, v)
	case []int:
		coerced := make([]int32, len(v))
		for i, x := range v {
			coerced[i] = int32(x)
		}

		return s.setInt32(name, coerced)
	default:
		return fmt.Errorf("%w: key %q: unsupported value type %T", errs.ErrInvalidElementType, name, values)
	}
}

func (s *LocStream) setFloat64(name string, values []float64) error {
	if len(values) != s.size {
		return fmt.Errorf("%w: key %q: expected %d values, got %d", errs.ErrInvalidLength, name, s.size, len(values))
	}
	if name == format.KeyMask {
		return fmt.Errorf("%w: mask key %q must be %s, got %s",
			errs.ErrInvalidElementType, name, format.TypeI4, format.TypeR8)
	}
	if format.IsAnyCoordKey(name) && !format.IsCoordKey(s.coordSys, name) {
		return fmt.Errorf("%w: key %q is not a %s coordinate (valid: %v)",
			errs.ErrUnknownCoordinateKey, name, s.coordSys, format.CoordKeys(s.coordSys))
	}

	k, err := s.ensureKey(name, format.TypeR8)
	if err != nil {
		return err
	}
	copy(k.f64, values)

	return nil
}

func (s *LocStream) setInt32(name string, values []int32) error {
	if len(values) != s.size {
		return fmt.Errorf("%w: key %q: expected %d values, got %d", errs.ErrInvalidLength, name, s.size, len(values))
	}
	if format.IsAnyCoordKey(name) {
		return fmt.Errorf("%w: coordinate key %q must be %s, got %s",
			errs.ErrInvalidElementType, name, format.TypeR8, format.TypeI4)
	}

	k, err := s.ensureKey(name, format.TypeI4)
	if err != nil {
		return err
	}
	copy(k.i32, values)

	return nil
}

// ensureKey returns the existing key after a kind check, or registers a new
// one. On owning streams new keys are backed by engine memory; copies and
// slices store them locally since the shared handle's buffers have the
// original length.
func (s *LocStream) ensureKey(name string, kind format.TypeKind) (*Key, error) {
	if k, ok := s.keys[name]; ok {
		if k.kind != kind {
			return nil, fmt.Errorf("%w: key %q holds %s, got %s", errs.ErrInvalidElementType, name, k.kind, kind)
		}

		return k, nil
	}

	k := &Key{name: name, kind: kind}
	if s.ownsHandle {
		if err := s.handle.RegisterKey(name, kind); err != nil {
			return nil, err
		}
		buf, err := s.handle.KeyBytes(name)
		if err != nil {
			return nil, err
		}
		if kind == format.TypeI4 {
			k.i32 = arrow.Int32Traits.CastFromBytes(buf)
		} else {
			k.f64 = arrow.Float64Traits.CastFromBytes(buf)
		}
	} else {
		if kind == format.TypeI4 {
			k.i32 = make([]int32, s.size)
		} else {
			k.f64 = make([]float64, s.size)
		}
	}
	s.keys[name] = k

	return k, nil
}

// Key returns the named key, or errs.ErrKeyNotFound.
func (s *LocStream) Key(name string) (*Key, error) {
	k, ok := s.keys[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrKeyNotFound, name)
	}

	return k, nil
}

// Float64s returns the live float64 array stored under name.
//
// The returned slice aliases the underlying storage (engine memory on an
// owning stream); it is never a defensive copy.
func (s *LocStream) Float64s(name string) ([]float64, error) {
	k, err := s.Key(name)
	if err != nil {
		return nil, err
	}
	if k.kind != format.TypeR8 {
		return nil, fmt.Errorf("%w: key %q holds %s, want %s", errs.ErrInvalidElementType, name, k.kind, format.TypeR8)
	}

	return k.f64, nil
}

// Int32s returns the live int32 array stored under name.
func (s *LocStream) Int32s(name string) ([]int32, error) {
	k, err := s.Key(name)
	if err != nil {
		return nil, err
	}
	if k.kind != format.TypeI4 {
		return nil, fmt.Errorf("%w: key %q holds %s, want %s", errs.ErrInvalidElementType, name, k.kind, format.TypeI4)
	}

	return k.i32, nil
}

// Mask returns the stream's mask array, or nil when no mask key exists.
// Unlike the other accessors it never returns an error: an absent mask is an
// ordinary state, not a fault.
func (s *LocStream) Mask() []int32 {
	k, ok := s.keys[format.KeyMask]
	if !ok {
		return nil
	}

	return k.i32
}
