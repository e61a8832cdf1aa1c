package render

// Palette
var (
	RgbHUDText      = RGB{255, 255, 255}
	RgbHUDLabel     = RGB{180, 180, 180}
	RgbHUDBg        = RGB{16, 16, 24}
	RgbGaugeEmpty   = RGB{50, 50, 50}
	RgbScore        = RGB{0, 255, 255}
	RgbLevel        = RGB{255, 165, 0}
	RgbQuota        = RGB{140, 190, 255}
	RgbInputText    = RGB{255, 255, 255}
	RgbInputBg      = RGB{40, 40, 60}
	RgbInputPrompt  = RGB{144, 238, 144}
	RgbOverlayBg    = RGB{20, 20, 30}
	RgbOverlayTitle = RGB{255, 192, 0}
	RgbOverlayText  = RGB{220, 220, 220}

	// Town
	RgbBuilding       = RGB{120, 110, 100}
	RgbBuildingLit    = RGB{255, 220, 120}
	RgbRubble         = RGB{90, 60, 40}
	RgbGround         = RGB{40, 60, 30}
	RgbTownBackground = RGB{22, 24, 30}
)

// backgrounds maps level background names to field tints
var backgrounds = map[string]RGB{
	"plains": {18, 30, 26},
	"ruins":  {34, 20, 22},
	"night":  {10, 12, 28},
	"desert": {38, 32, 18},
}

// BackgroundColor returns the field tint for a level background name
// Unknown names fall back to the default background
func BackgroundColor(name string) RGB {
	if c, ok := backgrounds[name]; ok {
		return c
	}
	return DefaultBgRGB
}

// GaugeColor returns the color for a fill fraction of a gauge
// progress is 0.0 to 1.0: deep red, orange, yellow, green
func GaugeColor(progress float64) RGB {
	if progress <= 0.0 {
		return RgbGaugeEmpty
	}
	if progress > 1.0 {
		progress = 1.0
	}

	switch {
	case progress < 0.333: // Red to Orange
		t := progress / 0.333
		return RGB{R: clamp(139 + (255-139)*t), G: clamp(69 * t), B: 0}
	case progress < 0.667: // Orange to Yellow
		t := (progress - 0.333) / 0.334
		return RGB{R: 255, G: clamp(69 + (215-69)*t), B: 0}
	default: // Yellow to Green
		t := (progress - 0.667) / 0.333
		return RGB{R: clamp(255 - (255-34)*t), G: clamp(215 - (215-197)*t), B: clamp(94 * t)}
	}
}
