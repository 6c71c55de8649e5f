package spawn

import (
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
)

// Population reports how many live enemies of a kind are in play.
type Population interface {
	Count(kind object.Kind) int
}

// Scheduler spawns at most one enemy each time its countdown elapses.
// The active tier only ever escalates.
type Scheduler struct {
	tiers       Tiers
	level       int
	countdown   int
	rng         object.Rand
	field       object.Field
	enemyFactor float64
}

// NewScheduler creates a scheduler starting at the easy tier.
// enemyFactor scales the random [30,60] enemy size roll (platform dependent).
func NewScheduler(tiers Tiers, rng object.Rand, field object.Field, enemyFactor float64) *Scheduler {
	s := &Scheduler{
		tiers:       tiers,
		level:       Easy,
		rng:         rng,
		field:       field,
		enemyFactor: enemyFactor,
	}
	s.countdown = s.delayTicks()
	return s
}

// Level returns the active tier level.
func (s *Scheduler) Level() int {
	return s.level
}

// Tier returns the active tier.
func (s *Scheduler) Tier() Tier {
	return s.tiers[s.level]
}

// Countdown returns the ticks left until the next spawn attempt.
func (s *Scheduler) Countdown() int {
	return s.countdown
}

// Escalate moves to the tier the score calls for, never downward.
func (s *Scheduler) Escalate(score int) {
	s.level = max(s.level, LevelForScore(score))
}

// Tick advances the spawn countdown by one tick. When it elapses the tier is
// re-evaluated, one spawn is attempted and the countdown restarts from the
// active tier's delay. Returns the spawned enemy or nil.
func (s *Scheduler) Tick(score int, pop Population) *object.Entity {
	s.countdown--
	if s.countdown > 0 {
		return nil
	}
	s.Escalate(score)
	e := s.Attempt(pop)
	s.countdown = s.delayTicks()
	return e
}

// Choose draws the archetype for this tick and reports whether its cap allows a spawn.
// A capped archetype does not fall through to another one.
func (s *Scheduler) Choose(pop Population) (object.Kind, bool) {
	tier := s.Tier()
	roll := s.rng.Between(1, 100)

	var kind object.Kind
	var limit int
	switch {
	case roll > 100-tier.UfoProbability:
		kind, limit = object.KindEnemyUfo, tier.UfoCount
	case roll > 100-tier.StrikeProbability:
		kind, limit = object.KindEnemyStrike, tier.StrikeCount
	default:
		kind, limit = object.KindEnemyRocket, tier.RocketCount
	}
	// Strict so a spawn can never push the live count past the cap.
	return kind, pop.Count(kind) < limit
}

// Attempt runs one spawn decision and builds the enemy if allowed.
func (s *Scheduler) Attempt(pop Population) *object.Entity {
	kind, ok := s.Choose(pop)
	if !ok {
		return nil
	}
	x := float64(s.rng.Between(0, int(s.field.Width)))
	scale := float64(s.rng.Between(config.EnemyMinScale, config.EnemyMaxScale)) * s.enemyFactor
	return object.NewEnemy(kind, x, 0, scale, s.rng)
}

func (s *Scheduler) delayTicks() int {
	return config.Ticks(s.Tier().Delay)
}
