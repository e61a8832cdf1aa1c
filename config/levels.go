package config

import (
	"fmt"
	"time"

	"github.com/lixenwraith/mathfall/equation"
)

// LevelSpec is one row of the level table
type LevelSpec struct {
	Level      int           `toml:"level"`
	Duration   time.Duration `toml:"duration"`
	Quota      int           `toml:"quota"`
	Background string        `toml:"background"`
}

// Seconds returns the countdown length in whole seconds
func (s LevelSpec) Seconds() int {
	return int(s.Duration / time.Second)
}

// DefaultLevels is the stock three-level table: 30s, 25s, 20s, no quotas
func DefaultLevels() []LevelSpec {
	return []LevelSpec{
		{Level: 1, Duration: 30 * time.Second, Background: "plains"},
		{Level: 2, Duration: 25 * time.Second, Background: "plains"},
		{Level: 3, Duration: 20 * time.Second, Background: "ruins"},
	}
}

// LevelTable is a read-only lookup of level settings
type LevelTable struct {
	specs [equation.LastLevel + 1]LevelSpec
}

// NewLevelTable builds a table that must cover exactly levels 1 through 3
func NewLevelTable(specs []LevelSpec) (LevelTable, error) {
	var t LevelTable
	var seen [equation.LastLevel + 1]bool

	for _, s := range specs {
		l := equation.Level(s.Level)
		if s.Level < int(equation.FirstLevel) || s.Level > int(equation.LastLevel) {
			return LevelTable{}, fmt.Errorf("level %d out of range %d-%d", s.Level, equation.FirstLevel, equation.LastLevel)
		}
		if seen[l] {
			return LevelTable{}, fmt.Errorf("level %d defined twice", s.Level)
		}
		if s.Duration < time.Second {
			return LevelTable{}, fmt.Errorf("level %d: duration %v below 1s", s.Level, s.Duration)
		}
		if s.Quota < 0 {
			return LevelTable{}, fmt.Errorf("level %d: negative quota %d", s.Level, s.Quota)
		}
		seen[l] = true
		t.specs[l] = s
	}

	for l := equation.FirstLevel; l <= equation.LastLevel; l++ {
		if !seen[l] {
			return LevelTable{}, fmt.Errorf("level %d missing", l)
		}
	}
	return t, nil
}

// DefaultLevelTable returns the stock table
func DefaultLevelTable() LevelTable {
	t, err := NewLevelTable(DefaultLevels())
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the settings of a level
func (t LevelTable) Lookup(l equation.Level) (LevelSpec, bool) {
	if !l.Valid() {
		return LevelSpec{}, false
	}
	return t.specs[l], true
}

// MustLevel returns the settings of a level; an unknown level is a programming error
func (t LevelTable) MustLevel(l equation.Level) LevelSpec {
	s, ok := t.Lookup(l)
	if !ok {
		panic(fmt.Sprintf("config: no settings for level %d", l))
	}
	return s
}
