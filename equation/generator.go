package equation

import (
	"fmt"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// Operator is a binary arithmetic operator as displayed to the player
type Operator rune

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '×'
	OpDiv Operator = '÷'
)

var mixedOperators = [...]Operator{OpAdd, OpSub, OpMul, OpDiv}

// Apply evaluates x op y; division rounds to the nearest integer
func (o Operator) Apply(x, y int) int {
	switch o {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return int(vmath.RoundHalfUp(float64(x) / float64(y)))
	default:
		panic(fmt.Sprintf("equation: unknown operator %q", rune(o)))
	}
}

// Payload is the generated expression and its integer answer
type Payload struct {
	Text   string
	Answer int
}

// Generate produces a random expression for the level
// Shape is fixed per level profile, operand values come from rng
func Generate(level Level, rng *vmath.FastRand) Payload {
	difficulty := level.Difficulty()

	switch level.Profile() {
	case ProfileAddSub:
		return generateAddSub(difficulty, rng)
	case ProfileMulDiv:
		return generateMulDiv(difficulty, rng)
	default:
		return generateMixed(difficulty, rng)
	}
}

func generateAddSub(difficulty int, rng *vmath.FastRand) Payload {
	span := constant.AddSubOperandScale * difficulty
	a := rng.IntRange(1, span)
	b := rng.IntRange(1, span)

	if rng.Chance(0.5) {
		return Payload{Text: format2(a, OpAdd, b), Answer: a + b}
	}
	hi, lo := max(a, b), min(a, b)
	return Payload{Text: format2(hi, OpSub, lo), Answer: hi - lo}
}

func generateMulDiv(difficulty int, rng *vmath.FastRand) Payload {
	if rng.Chance(0.5) {
		a := rng.IntRange(2, difficulty+1)
		b := rng.IntRange(2, difficulty+1)
		return Payload{Text: format2(a, OpMul, b), Answer: a * b}
	}
	// Divisor and quotient first so the dividend divides exactly
	b := rng.IntRange(2, difficulty+1)
	q := rng.IntRange(1, difficulty)
	return Payload{Text: format2(b*q, OpDiv, b), Answer: q}
}

func generateMixed(difficulty int, rng *vmath.FastRand) Payload {
	span := constant.ComplexOperandScale * difficulty
	a := rng.IntRange(1, span)
	b := rng.IntRange(1, span)
	c := rng.IntRange(1, span)
	op1 := mixedOperators[rng.Intn(len(mixedOperators))]
	op2 := mixedOperators[rng.Intn(len(mixedOperators))]

	return Payload{
		Text:   fmt.Sprintf("%d %c %d %c %d", a, op1, b, op2, c),
		Answer: op2.Apply(op1.Apply(a, b), c),
	}
}

func format2(a int, op Operator, b int) string {
	return fmt.Sprintf("%d %c %d", a, op, b)
}
