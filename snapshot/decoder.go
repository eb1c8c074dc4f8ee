package snapshot

import (
	"fmt"
	"math"

	"github.com/ferrix-io/locstream"
	"github.com/ferrix-io/locstream/comm"
	"github.com/ferrix-io/locstream/compress"
	"github.com/ferrix-io/locstream/engine"
	"github.com/ferrix-io/locstream/errs"
	"github.com/ferrix-io/locstream/format"
	"github.com/ferrix-io/locstream/internal/hash"
	"github.com/ferrix-io/locstream/internal/options"
)

type decoderConfig struct {
	engine engine.Engine
	comm   comm.Comm
}

// DecoderOption configures Decode.
type DecoderOption = options.Option[*decoderConfig]

// WithEngine backs the rebuilt stream's keys with the given engine instead of
// a fresh local engine.
func WithEngine(e engine.Engine) DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.engine = e
	})
}

// WithComm attaches a process-layout collaborator to the rebuilt stream.
func WithComm(cm comm.Comm) DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.comm = cm
	})
}

// Decode rebuilds a location stream from snapshot bytes.
//
// The rebuilt stream is a fresh allocation: its engine handle is newly
// acquired and its bounds are assigned by the engine, not restored from the
// snapshot (use ReadInfo for the bounds the source partition had). Keys are
// recreated with their recorded names, kinds, and values.
//
// Returns:
//   - *locstream.LocStream: New stream owning its handle; destroy it when done
//   - error: errs.ErrInvalidMagic, errs.ErrUnsupportedVersion,
//     errs.ErrCorruptedSnapshot, or decompression failures
func Decode(data []byte, opts ...DecoderOption) (*locstream.LocStream, error) {
	cfg := &decoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	hdr, payloadOff, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(hdr.compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(data[payloadOff:])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", errs.ErrCorruptedSnapshot, err)
	}

	streamOpts := []locstream.Option{
		locstream.WithName(hdr.name),
		locstream.WithCoordSys(hdr.coordSys),
	}
	if cfg.engine != nil {
		streamOpts = append(streamOpts, locstream.WithEngine(cfg.engine))
	}
	if cfg.comm != nil {
		streamOpts = append(streamOpts, locstream.WithComm(cfg.comm))
	}

	ls, err := locstream.New(hdr.size, streamOpts...)
	if err != nil {
		return nil, err
	}

	off := 0
	for _, e := range hdr.entries {
		if e.id != hash.ID(e.name) {
			ls.Destroy()
			return nil, fmt.Errorf("%w: key %q has mismatched name hash", errs.ErrCorruptedSnapshot, e.name)
		}
		if e.payloadLen != hdr.size*e.kind.Size() {
			ls.Destroy()
			return nil, fmt.Errorf("%w: key %q payload is %d bytes, want %d",
				errs.ErrCorruptedSnapshot, e.name, e.payloadLen, hdr.size*e.kind.Size())
		}
		if off+e.payloadLen > len(payload) {
			ls.Destroy()
			return nil, fmt.Errorf("%w: payload exhausted at key %q", errs.ErrCorruptedSnapshot, e.name)
		}

		if err := ls.Set(e.name, decodeKeyValues(payload[off:off+e.payloadLen], e.kind, hdr.size)); err != nil {
			ls.Destroy()
			return nil, err
		}
		off += e.payloadLen
	}
	if off != len(payload) {
		ls.Destroy()
		return nil, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrCorruptedSnapshot, len(payload)-off)
	}

	return ls, nil
}

func decodeKeyValues(data []byte, kind format.TypeKind, count int) any {
	if kind == format.TypeI4 {
		vals := make([]int32, count)
		for i := range vals {
			vals[i] = int32(wire.Uint32(data[i*4 : i*4+4]))
		}

		return vals
	}

	vals := make([]float64, count)
	for i := range vals {
		vals[i] = math.Float64frombits(wire.Uint64(data[i*8 : i*8+8]))
	}

	return vals
}
