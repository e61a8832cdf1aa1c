package equation

import (
	"math"
	"strconv"
	"strings"
)

// ParseAnswer converts player text to an integer answer
// Fractional input truncates toward zero; empty or non-numeric input reports false
func ParseAnswer(input string) (int, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Trunc(f)), true
}
