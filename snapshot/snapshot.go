// Package snapshot implements a compact binary interchange format for
// location streams.
//
// A snapshot captures a stream's bookkeeping (name, coordinate system, size,
// bounds) and every key array in one self-contained byte slice, suitable for
// checkpointing or handing a partition to another process. It is not a file
// format: the package only produces and consumes bytes.
//
// # Layout
//
// All integers are little-endian:
//
//	magic       uint32   0x4c6f5374 ("LoSt")
//	version     uint8    currently 1
//	compression uint8    format.CompressionType of the payload block
//	coordSys    uint8    format.CoordSys
//	reserved    uint8
//	size        uint32   local point count
//	lower       uint64   lower global index bound
//	nameLen     uint16 + name bytes
//	keyCount    uint16
//	keyCount index entries:
//	    id         uint64   xxHash64 of the key name
//	    kind       uint8    format.TypeKind
//	    nameLen    uint16 + name bytes
//	    payloadLen uint32   uncompressed byte length of this key's array
//	payload: all key arrays back to back, in index order, compressed as one
//	block with the declared compression type
//
// Keys are written in sorted name order, so encoding is deterministic.
package snapshot

import (
	"fmt"

	"github.com/ferrix-io/locstream/endian"
	"github.com/ferrix-io/locstream/errs"
	"github.com/ferrix-io/locstream/format"
)

const (
	magic   uint32 = 0x4c6f5374
	version uint8  = 1

	headerSize = 4 + 1 + 1 + 1 + 1 + 4 + 8 + 2 + 2 // fixed part, name bytes excluded
)

// wire is the byte order snapshots use on the wire.
var wire = endian.GetLittleEndianEngine()

// Info summarizes a snapshot's header without decoding its payload.
type Info struct {
	Name        string
	CoordSys    format.CoordSys
	Compression format.CompressionType
	Size        int
	LowerBound  int
	UpperBound  int
	Keys        []string
}

// ReadInfo parses a snapshot's header and index.
//
// Returns:
//   - Info: Stream bookkeeping and key names recorded in the snapshot
//   - error: errs.ErrInvalidMagic, errs.ErrUnsupportedVersion, or
//     errs.ErrCorruptedSnapshot
func ReadInfo(data []byte) (Info, error) {
	hdr, _, err := parseHeader(data)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Name:        hdr.name,
		CoordSys:    hdr.coordSys,
		Compression: hdr.compression,
		Size:        hdr.size,
		LowerBound:  hdr.lower,
		UpperBound:  hdr.lower + hdr.size,
		Keys:        make([]string, len(hdr.entries)),
	}
	for i, e := range hdr.entries {
		info.Keys[i] = e.name
	}

	return info, nil
}

type indexEntry struct {
	id         uint64
	kind       format.TypeKind
	name       string
	payloadLen int
}

type header struct {
	compression format.CompressionType
	coordSys    format.CoordSys
	size        int
	lower       int
	name        string
	entries     []indexEntry
}

// parseHeader reads the fixed header and index, returning the byte offset
// where the compressed payload begins.
func parseHeader(data []byte) (header, int, error) {
	var hdr header

	if len(data) < 12 {
		return hdr, 0, fmt.Errorf("%w: %d bytes is shorter than the fixed header", errs.ErrCorruptedSnapshot, len(data))
	}
	if wire.Uint32(data[0:4]) != magic {
		return hdr, 0, fmt.Errorf("%w: 0x%08x", errs.ErrInvalidMagic, wire.Uint32(data[0:4]))
	}
	if data[4] != version {
		return hdr, 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, data[4])
	}

	hdr.compression = format.CompressionType(data[5])
	hdr.coordSys = format.CoordSys(data[6])
	if !hdr.coordSys.Valid() {
		return hdr, 0, fmt.Errorf("%w: coordinate system %d", errs.ErrCorruptedSnapshot, data[6])
	}

	hdr.size = int(wire.Uint32(data[8:12]))
	off := 12

	lower, off, err := readUint64(data, off)
	if err != nil {
		return hdr, 0, err
	}
	hdr.lower = int(lower)

	hdr.name, off, err = readString(data, off)
	if err != nil {
		return hdr, 0, err
	}

	keyCount, off, err := readUint16(data, off)
	if err != nil {
		return hdr, 0, err
	}

	hdr.entries = make([]indexEntry, keyCount)
	for i := range hdr.entries {
		e := &hdr.entries[i]

		e.id, off, err = readUint64(data, off)
		if err != nil {
			return hdr, 0, err
		}
		if off >= len(data) {
			return hdr, 0, truncated(off)
		}
		e.kind = format.TypeKind(data[off])
		if e.kind.Size() == 0 {
			return hdr, 0, fmt.Errorf("%w: key %d has element kind %d", errs.ErrCorruptedSnapshot, i, data[off])
		}
		off++

		e.name, off, err = readString(data, off)
		if err != nil {
			return hdr, 0, err
		}

		var plen uint32
		plen, off, err = readUint32(data, off)
		if err != nil {
			return hdr, 0, err
		}
		e.payloadLen = int(plen)
	}

	return hdr, off, nil
}

func truncated(off int) error {
	return fmt.Errorf("%w: truncated at offset %d", errs.ErrCorruptedSnapshot, off)
}

func readUint16(data []byte, off int) (uint16, int, error) {
	if off+2 > len(data) {
		return 0, off, truncated(off)
	}

	return wire.Uint16(data[off : off+2]), off + 2, nil
}

func readUint32(data []byte, off int) (uint32, int, error) {
	if off+4 > len(data) {
		return 0, off, truncated(off)
	}

	return wire.Uint32(data[off : off+4]), off + 4, nil
}

func readUint64(data []byte, off int) (uint64, int, error) {
	if off+8 > len(data) {
		return 0, off, truncated(off)
	}

	return wire.Uint64(data[off : off+8]), off + 8, nil
}

func readString(data []byte, off int) (string, int, error) {
	n, off, err := readUint16(data, off)
	if err != nil {
		return "", off, err
	}
	if off+int(n) > len(data) {
		return "", off, truncated(off)
	}

	return string(data[off : off+int(n)]), off + int(n), nil
}
