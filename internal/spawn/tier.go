// Package spawn decides which enemy appears when, and how hard the game is.
package spawn

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Tier is one difficulty configuration bundle.
type Tier struct {
	Name              string        `yaml:"name"`
	StrikeCount       int           `yaml:"strike_count"`
	UfoCount          int           `yaml:"ufo_count"`
	RocketCount       int           `yaml:"rocket_count"`
	UfoProbability    int           `yaml:"ufo_probability"`
	StrikeProbability int           `yaml:"strike_probability"`
	Delay             time.Duration `yaml:"delay"`
}

// Tier levels, in escalation order.
const (
	Easy = iota
	Medium
	Hard
)

// Score thresholds. Escalation happens when the score is strictly greater.
const (
	MediumScore = 1000
	HardScore   = 2000
)

// ErrInvalidTiers is returned when a tier table cannot be used.
var ErrInvalidTiers = errors.New("invalid tier table")

// Tiers is the ordered easy/medium/hard table.
type Tiers [3]Tier

// DefaultTiers returns the built-in difficulty table.
func DefaultTiers() Tiers {
	return Tiers{
		Easy: {
			Name:              "easy",
			StrikeCount:       30,
			UfoCount:          15,
			RocketCount:       20,
			UfoProbability:    40,
			StrikeProbability: 60,
			Delay:             1000 * time.Millisecond,
		},
		Medium: {
			Name:              "medium",
			StrikeCount:       50,
			UfoCount:          40,
			RocketCount:       40,
			UfoProbability:    60,
			StrikeProbability: 80,
			Delay:             500 * time.Millisecond,
		},
		Hard: {
			Name:              "hard",
			StrikeCount:       60,
			UfoCount:          70,
			RocketCount:       80,
			UfoProbability:    85,
			StrikeProbability: 95,
			Delay:             100 * time.Millisecond,
		},
	}
}

// LevelForScore maps a cumulative score to a tier level.
func LevelForScore(score int) int {
	switch {
	case score > HardScore:
		return Hard
	case score > MediumScore:
		return Medium
	default:
		return Easy
	}
}

// Validate checks that every tier has sane probabilities, caps and delays.
func (t Tiers) Validate() error {
	for i, tier := range t {
		if tier.UfoProbability < 0 || tier.UfoProbability > 100 ||
			tier.StrikeProbability < 0 || tier.StrikeProbability > 100 {
			return fmt.Errorf("%w: tier %d probabilities out of [0,100]", ErrInvalidTiers, i)
		}
		if tier.StrikeCount < 0 || tier.UfoCount < 0 || tier.RocketCount < 0 {
			return fmt.Errorf("%w: tier %d has a negative cap", ErrInvalidTiers, i)
		}
		if tier.Delay <= 0 {
			return fmt.Errorf("%w: tier %d delay must be positive", ErrInvalidTiers, i)
		}
	}
	return nil
}

type tierFile struct {
	Tiers []Tier `yaml:"tiers"`
}

// LoadTiers reads a YAML tier table with exactly three entries (easy, medium, hard).
// Delays use Go duration syntax, e.g. "500ms".
func LoadTiers(r io.Reader) (Tiers, error) {
	var f tierFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return Tiers{}, fmt.Errorf("decode tiers: %w", err)
	}
	if len(f.Tiers) != len(Tiers{}) {
		return Tiers{}, fmt.Errorf("%w: want %d tiers, got %d", ErrInvalidTiers, len(Tiers{}), len(f.Tiers))
	}
	var t Tiers
	copy(t[:], f.Tiers)
	if err := t.Validate(); err != nil {
		return Tiers{}, err
	}
	return t, nil
}
