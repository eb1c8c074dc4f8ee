package format

type (
	CoordSys        uint8
	TypeKind        uint8
	CompressionType uint8
)

const (
	CoordSysCartesian CoordSys = 0x1 // CoordSysCartesian represents Cartesian x/y/z coordinates.
	CoordSysSphDeg    CoordSys = 0x2 // CoordSysSphDeg represents spherical coordinates in degrees.
	CoordSysSphRad    CoordSys = 0x3 // CoordSysSphRad represents spherical coordinates in radians.

	TypeI4 TypeKind = 0x1 // TypeI4 represents 32-bit signed integer elements.
	TypeR8 TypeKind = 0x2 // TypeR8 represents 64-bit float elements.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CoordSys) String() string {
	switch c {
	case CoordSysCartesian:
		return "Cartesian"
	case CoordSysSphDeg:
		return "SphericalDegrees"
	case CoordSysSphRad:
		return "SphericalRadians"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the defined coordinate systems.
func (c CoordSys) Valid() bool {
	return c == CoordSysCartesian || c == CoordSysSphDeg || c == CoordSysSphRad
}

func (k TypeKind) String() string {
	switch k {
	case TypeI4:
		return "I4"
	case TypeR8:
		return "R8"
	default:
		return "Unknown"
	}
}

// Size returns the element size in bytes, or 0 for an unknown kind.
func (k TypeKind) Size() int {
	switch k {
	case TypeI4:
		return 4
	case TypeR8:
		return 8
	default:
		return 0
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
