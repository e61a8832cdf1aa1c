package equation

import (
	"fmt"

	"github.com/lixenwraith/mathfall/constant"
)

// Level is one of the three fixed difficulty stages
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
)

const (
	FirstLevel = Level1
	LastLevel  = Level3
)

// Valid reports whether the level belongs to the closed set {1, 2, 3}
func (l Level) Valid() bool {
	return l >= FirstLevel && l <= LastLevel
}

// IsLast reports whether no further level exists
func (l Level) IsLast() bool {
	return l == LastLevel
}

// Next returns the following level, panics past the last one
func (l Level) Next() Level {
	if !l.Valid() || l.IsLast() {
		panic(fmt.Sprintf("equation: no level after %d", l))
	}
	return l + 1
}

// Difficulty scales operand ranges: min(level*3, 10)
func (l Level) Difficulty() int {
	return min(int(l)*constant.DifficultyPerLevel, constant.DifficultyMax)
}

// Profile returns the operator profile bound to the level
func (l Level) Profile() Profile {
	switch l {
	case Level1:
		return ProfileAddSub
	case Level2:
		return ProfileMulDiv
	case Level3:
		return ProfileMixed
	default:
		panic(fmt.Sprintf("equation: invalid level %d", l))
	}
}

func (l Level) String() string {
	return fmt.Sprintf("L%d", int(l))
}

// Profile selects the expression shape
type Profile uint8

const (
	ProfileAddSub Profile = iota
	ProfileMulDiv
	ProfileMixed
)

func (p Profile) String() string {
	switch p {
	case ProfileAddSub:
		return "add-sub"
	case ProfileMulDiv:
		return "mul-div"
	case ProfileMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ColorTag is the cosmetic category of an equation
type ColorTag uint8

const (
	ColorRed ColorTag = iota
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorPink
	ColorIndigo
	ColorTeal
	colorTagCount
)

var colorTagNames = [colorTagCount]string{
	"red", "blue", "green", "yellow", "purple", "pink", "indigo", "teal",
}

func (c ColorTag) String() string {
	if c >= colorTagCount {
		return "unknown"
	}
	return colorTagNames[c]
}

// ColorTagCount is the number of cosmetic categories
const ColorTagCount = int(colorTagCount)

var colorTagRGB = [colorTagCount][3]uint8{
	{248, 113, 113},
	{96, 165, 250},
	{74, 222, 128},
	{250, 204, 21},
	{192, 132, 252},
	{244, 114, 182},
	{129, 140, 248},
	{45, 212, 191},
}

// RGB returns the display color of the tag; unknown tags render white
func (c ColorTag) RGB() (r, g, b uint8) {
	if c >= colorTagCount {
		return 255, 255, 255
	}
	rgb := colorTagRGB[c]
	return rgb[0], rgb[1], rgb[2]
}

// MatchRGB is the highlight color of a matched equation
func MatchRGB() (r, g, b uint8) {
	return 34, 197, 94
}
