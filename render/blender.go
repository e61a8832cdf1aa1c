package render

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opAdd uint8 = 0x02
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// BlendAddBg adds onto the background and keeps the foreground
const BlendAddBg = BlendMode(opAdd | flagBg)

func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch uint8(m) & 0x0F {
	case opAdd:
		return AddScaled(dst, src, alpha)
	}
	return dst
}
