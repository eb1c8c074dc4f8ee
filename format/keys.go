package format

// Well-known key names. For a location stream to expose coordinates to a
// regridding engine, its coordinate keys must use the names mandated by the
// stream's coordinate system:
//
//	Coordinate System   dimension 1   dimension 2   dimension 3
//	CoordSysSphDeg      Lon           Lat           Radius
//	CoordSysSphRad      Lon           Lat           Radius
//	CoordSysCartesian   X             Y             Z
//
// The mask key is always named Mask and must be integer typed; coordinate
// keys must be float typed.
const (
	KeyLon    = "Lon"
	KeyLat    = "Lat"
	KeyRadius = "Radius"
	KeyX      = "X"
	KeyY      = "Y"
	KeyZ      = "Z"
	KeyMask   = "Mask"
)

var (
	cartesianKeys = [3]string{KeyX, KeyY, KeyZ}
	sphericalKeys = [3]string{KeyLon, KeyLat, KeyRadius}
)

// CoordKeys returns the coordinate key names for the given coordinate system,
// in dimension order. It returns the Cartesian names for an unknown system.
func CoordKeys(cs CoordSys) [3]string {
	if cs == CoordSysSphDeg || cs == CoordSysSphRad {
		return sphericalKeys
	}

	return cartesianKeys
}

// IsCoordKey reports whether name is a coordinate key of the given coordinate
// system.
func IsCoordKey(cs CoordSys, name string) bool {
	for _, k := range CoordKeys(cs) {
		if k == name {
			return true
		}
	}

	return false
}

// IsAnyCoordKey reports whether name is a coordinate key of any coordinate
// system.
func IsAnyCoordKey(name string) bool {
	return IsCoordKey(CoordSysCartesian, name) || IsCoordKey(CoordSysSphDeg, name)
}
