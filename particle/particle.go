package particle

import (
	"github.com/lixenwraith/mathfall/vmath"
)

// Kind tags the closed set of particle variants
type Kind uint8

const (
	KindSmoke Kind = iota
	KindTrail
	KindFlame
	KindBlast
)

func (k Kind) String() string {
	switch k {
	case KindSmoke:
		return "smoke"
	case KindTrail:
		return "trail"
	case KindFlame:
		return "flame"
	case KindBlast:
		return "blast"
	default:
		return "unknown"
	}
}

// Entity is a visual primitive advanced once per animator tick
type Entity interface {
	Kind() Kind
	Step(rng *vmath.FastRand)
	Draw(c Canvas, rng *vmath.FastRand)
	Destroyed() bool
}

// faded reports a particle that has used up its opacity
func faded(opacity float64) bool {
	return opacity <= 0
}
