package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.ByteOrder(binary.LittleEndian), binary.ByteOrder(GetLittleEndianEngine()))
	require.Equal(t, binary.ByteOrder(binary.BigEndian), binary.ByteOrder(GetBigEndianEngine()))
}

func TestCheckEndianness(t *testing.T) {
	native := CheckEndianness()
	if IsNativeLittleEndian() {
		require.Equal(t, binary.ByteOrder(binary.LittleEndian), native)
		require.False(t, IsNativeBigEndian())
	} else {
		require.Equal(t, binary.ByteOrder(binary.BigEndian), native)
		require.True(t, IsNativeBigEndian())
	}
}

func TestEngineRoundTrip(t *testing.T) {
	engines := []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()}
	for _, engine := range engines {
		buf := engine.AppendUint64(nil, 0x0102030405060708)
		require.Len(t, buf, 8)
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(buf))

		buf = engine.AppendUint32(nil, 0xdeadbeef)
		require.Len(t, buf, 4)
		require.Equal(t, uint32(0xdeadbeef), engine.Uint32(buf))

		buf = engine.AppendUint16(nil, 0xbeef)
		require.Len(t, buf, 2)
		require.Equal(t, uint16(0xbeef), engine.Uint16(buf))
	}
}
