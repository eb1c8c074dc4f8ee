// Package errs defines the sentinel errors shared across the locstream
// packages.
//
// Callers wrap these with fmt.Errorf("%w: ...") to attach context such as the
// offending key name or the expected vs. actual length, so errors stay
// matchable with errors.Is while remaining descriptive.
package errs

import "errors"

// Key store errors.
var (
	// ErrInvalidLength indicates a key write whose value count does not match
	// the stream's point count.
	ErrInvalidLength = errors.New("value length does not match stream size")

	// ErrInvalidElementType indicates a key write whose element type is
	// incompatible with the key's established or mandated type.
	ErrInvalidElementType = errors.New("incompatible element type")

	// ErrUnknownCoordinateKey indicates a coordinate key name that does not
	// belong to the stream's coordinate system.
	ErrUnknownCoordinateKey = errors.New("coordinate key not valid for coordinate system")

	// ErrKeyNotFound indicates a lookup of a key that was never written.
	ErrKeyNotFound = errors.New("key not found")
)

// Stream lifecycle errors.
var (
	// ErrInvalidPointCount indicates a stream creation with a non-positive
	// point count.
	ErrInvalidPointCount = errors.New("invalid point count")

	// ErrInvalidSliceRange indicates a slice range outside [0, size].
	ErrInvalidSliceRange = errors.New("invalid slice range")

	// ErrUnsupportedInParallel indicates a serial-only operation attempted
	// while more than one process is active.
	ErrUnsupportedInParallel = errors.New("operation not supported in parallel")

	// ErrUseAfterRelease indicates an engine handle access after the handle
	// was released.
	ErrUseAfterRelease = errors.New("engine handle used after release")

	// ErrKeyAlreadyRegistered indicates a duplicate key registration on the
	// same engine handle.
	ErrKeyAlreadyRegistered = errors.New("key already registered")
)

// Snapshot codec errors.
var (
	// ErrInvalidMagic indicates snapshot data that does not start with the
	// snapshot magic number.
	ErrInvalidMagic = errors.New("invalid snapshot magic number")

	// ErrUnsupportedVersion indicates a snapshot produced by an unknown
	// format version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrCorruptedSnapshot indicates truncated or internally inconsistent
	// snapshot data.
	ErrCorruptedSnapshot = errors.New("corrupted snapshot data")

	// ErrInvalidCompressionType indicates an unknown compression type code.
	ErrInvalidCompressionType = errors.New("invalid compression type")
)
