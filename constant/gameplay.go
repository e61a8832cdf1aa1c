package constant

// Equations
const (
	// MaxConcurrentEquations caps the falling set
	MaxConcurrentEquations = 10

	// SpawnY places new and recycled equations just above the field
	SpawnY = -50.0

	// SpawnSideMargin keeps spawn x away from the field edges (px)
	SpawnSideMargin = 75.0

	// Speed range in px per advance tick, [min, min+span)
	EquationSpeedMin  = 1.0
	EquationSpeedSpan = 2.0
)

// Scoring
const (
	ScoreCorrect      = 10
	ScoreCrossPenalty = 5
)

// Town defense
const (
	TownHealthMax    = 100
	TownImpactDamage = 10

	// TownHeight is the strip at the bottom of the field occupied by the town (px)
	TownHeight = 96.0
)

// Expression generation
const (
	DifficultyPerLevel = 3
	DifficultyMax      = 10

	// Operand span multipliers per level shape
	AddSubOperandScale  = 10
	ComplexOperandScale = 5
)
