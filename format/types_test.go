package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoordSysString(t *testing.T) {
	require.Equal(t, "Cartesian", CoordSysCartesian.String())
	require.Equal(t, "SphericalDegrees", CoordSysSphDeg.String())
	require.Equal(t, "SphericalRadians", CoordSysSphRad.String())
	require.Equal(t, "Unknown", CoordSys(0x7f).String())
}

func TestCoordSysValid(t *testing.T) {
	require.True(t, CoordSysCartesian.Valid())
	require.True(t, CoordSysSphDeg.Valid())
	require.True(t, CoordSysSphRad.Valid())
	require.False(t, CoordSys(0).Valid())
	require.False(t, CoordSys(0x7f).Valid())
}

func TestTypeKind(t *testing.T) {
	require.Equal(t, "I4", TypeI4.String())
	require.Equal(t, "R8", TypeR8.String())
	require.Equal(t, "Unknown", TypeKind(9).String())

	require.Equal(t, 4, TypeI4.Size())
	require.Equal(t, 8, TypeR8.Size())
	require.Equal(t, 0, TypeKind(9).Size())
}

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0xff).String())
}

func TestCoordKeys(t *testing.T) {
	require.Equal(t, [3]string{KeyX, KeyY, KeyZ}, CoordKeys(CoordSysCartesian))
	require.Equal(t, [3]string{KeyLon, KeyLat, KeyRadius}, CoordKeys(CoordSysSphDeg))
	require.Equal(t, [3]string{KeyLon, KeyLat, KeyRadius}, CoordKeys(CoordSysSphRad))
}

func TestIsCoordKey(t *testing.T) {
	require.True(t, IsCoordKey(CoordSysCartesian, KeyX))
	require.False(t, IsCoordKey(CoordSysCartesian, KeyLon))
	require.True(t, IsCoordKey(CoordSysSphRad, KeyRadius))
	require.False(t, IsCoordKey(CoordSysSphDeg, KeyMask))
	require.False(t, IsCoordKey(CoordSysSphDeg, "Elevation"))

	require.True(t, IsAnyCoordKey(KeyZ))
	require.True(t, IsAnyCoordKey(KeyLat))
	require.False(t, IsAnyCoordKey(KeyMask))
	require.False(t, IsAnyCoordKey("Elevation"))
}
