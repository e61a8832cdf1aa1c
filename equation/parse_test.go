package equation

import (
	"strconv"
	"testing"
)

func itoa(n int) string { return strconv.Itoa(n) }

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"15", 15, true},
		{" 42 ", 42, true},
		{"-3", -3, true},
		{"+8", 8, true},
		{"7.9", 7, true},
		{"-7.9", -7, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1e300", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAnswer(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseAnswer(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
