package snapshot

import (
	"fmt"
	"math"

	"github.com/ferrix-io/locstream"
	"github.com/ferrix-io/locstream/compress"
	"github.com/ferrix-io/locstream/format"
	"github.com/ferrix-io/locstream/internal/hash"
	"github.com/ferrix-io/locstream/internal/options"
)

type encoderConfig struct {
	compression format.CompressionType
}

// EncoderOption configures Encode.
type EncoderOption = options.Option[*encoderConfig]

// WithCompression selects the payload compression algorithm.
// The default is format.CompressionNone.
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.New(func(c *encoderConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// Encode serializes a location stream into a snapshot.
//
// The stream itself is not modified and stays usable; key arrays are read
// through their live views in sorted name order so output is deterministic.
//
// Returns:
//   - []byte: Self-contained snapshot bytes owned by the caller
//   - error: Option errors or compression failures
func Encode(ls *locstream.LocStream, opts ...EncoderOption) ([]byte, error) {
	cfg := &encoderConfig{compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	names := ls.Keys()

	// header and index
	buf := make([]byte, 0, headerSize+len(ls.Name())+len(names)*24)
	buf = wire.AppendUint32(buf, magic)
	buf = append(buf, version, byte(cfg.compression), byte(ls.CoordSys()), 0)
	buf = wire.AppendUint32(buf, uint32(ls.Size()))
	buf = wire.AppendUint64(buf, uint64(ls.LowerBound()))
	buf = appendString(buf, ls.Name())
	buf = wire.AppendUint16(buf, uint16(len(names)))

	payload := make([]byte, 0, ls.Size()*8*len(names))
	for _, name := range names {
		k, err := ls.Key(name)
		if err != nil {
			return nil, err
		}

		buf = wire.AppendUint64(buf, hash.ID(name))
		buf = append(buf, byte(k.Kind()))
		buf = appendString(buf, name)
		buf = wire.AppendUint32(buf, uint32(k.Len()*k.Kind().Size()))

		payload = appendKeyValues(payload, k)
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot payload: %w", err)
	}

	return append(buf, compressed...), nil
}

func appendString(buf []byte, s string) []byte {
	buf = wire.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...)
}

func appendKeyValues(buf []byte, k *locstream.Key) []byte {
	if k.Kind() == format.TypeI4 {
		for _, v := range k.Int32s() {
			buf = wire.AppendUint32(buf, uint32(v))
		}

		return buf
	}

	for _, v := range k.Float64s() {
		buf = wire.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}
