package constant

// Flame
const (
	FlameRadius        = 5.0
	FlameGlowRadius    = 12.0
	FlameTrailsPerTick = 9
	FlameJitter        = 1.5
	FlameGlowAlphaMin  = 0.2
	FlameGlowAlphaMax  = 0.9
	FlameCoreSpread    = 1.5

	// FlameOffsetY places the flame center relative to the equation anchor
	FlameOffsetY = -20.0

	// FlameLabelOffsetY places the equation text below the flame
	FlameLabelOffsetY = 20.0
)

// Trail
const (
	TrailRadius       = 5.0
	TrailRiseMax      = 8.0
	TrailDrift        = 3.0
	TrailFade         = 0.05
	TrailGlowScale    = 1.5
	TrailGlowJitter   = 2.0
	TrailGreenMax     = 240
	TrailSmokeChance  = 0.5
	TrailSmokeLiftMul = 3.0
)

// Smoke
const (
	SmokeOpacity = 0.8
	SmokeRadius  = 0.6
	SmokeRiseMax = 3.0
	SmokeDrift   = 2.0
	SmokeFade    = 0.015
	SmokeGray    = 60
)

// Blast
const (
	BlastRadiusStep = 2.0
	BlastFade       = 0.05
	BlastMaxRadius  = 50.0

	// BlastOffsetY places the blast center below the flame
	BlastOffsetY = 70.0
)
