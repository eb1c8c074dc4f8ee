package compress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferrix-io/locstream/errs"
	"github.com/ferrix-io/locstream/format"
)

// generatePayload builds a payload resembling concatenated key arrays:
// smooth float coordinates followed by a sparse integer mask.
func generatePayload(points int) []byte {
	data := make([]byte, 0, points*20)
	for i := range points {
		// fake little-endian float patterns, byte-level smoothness is enough
		data = append(data, byte(i), byte(i>>8), 0, 0, byte(i%7), 0, 0x40, 0x40)
	}
	for i := range points {
		if i%16 == 0 {
			data = append(data, 1, 0, 0, 0)
		} else {
			data = append(data, 0, 0, 0, 0)
		}
	}

	return data
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0xff))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
}

func TestCodecRoundTrip(t *testing.T) {
	payload := generatePayload(256)

	tests := []struct {
		name  string
		ctype format.CompressionType
	}{
		{"None", format.CompressionNone},
		{"Zstd", format.CompressionZstd},
		{"S2", format.CompressionS2},
		{"LZ4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.ctype)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)

		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestZstdDetectsCorruption(t *testing.T) {
	codec := NewZstdCompressor()
	_, err := codec.Decompress([]byte{0x01, 0x02, 0x03, 0x04})
	require.Error(t, err)
}
