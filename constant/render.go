package constant

// Render masks categorize buffer cells for selective post-processing
// Masks are bitfields allowing combination via OR and exclusion via XOR
const (
	MaskNone  uint8 = 0
	MaskField uint8 = 1 << 0 // Fireballs, labels, background tint
	MaskTown  uint8 = 1 << 1 // Town strip
	MaskUI    uint8 = 1 << 2 // HUD row, input line, overlays
	MaskAll   uint8 = 0xFF
)

// Post-process configuration
const (
	// GrayoutMask is desaturated while the session is ended
	GrayoutMask = MaskField | MaskTown

	// OcclusionDimFactor scales the glow behind label glyphs so text stays legible
	OcclusionDimFactor = 0.6
	OcclusionDimMask   = MaskField
)

// Terminal layout
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	HUDRows   = 1
	InputRows = 1

	// HUDBarWidth is the cell width of the timer and health gauges
	HUDBarWidth = 12

	// TownBuildings is the number of buildings across the town strip
	TownBuildings = 18

	// InputMaxLen bounds the answer field
	InputMaxLen = 10
)
