package object

import (
	"math/rand/v2"

	"github.com/tomz197/galactic/internal/loop/config"
)

// Rand is the random source used for spawning. Between is inclusive on both ends.
type Rand interface {
	Between(lo, hi int) int
}

type pcgRand struct {
	r *rand.Rand
}

// NewRand returns a seeded Rand.
func NewRand(seed uint64) Rand {
	return &pcgRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.r.IntN(hi-lo+1)
}

// NewPlayer creates the player ship entity.
func NewPlayer(x, y, scale float64) *Entity {
	return &Entity{Kind: KindPlayer, X: x, Y: y, Scale: scale}
}

// NewRocket creates a rocket enemy drifting straight down.
func NewRocket(x, y, scale float64, rng Rand) *Entity {
	return &Entity{
		Kind:   KindEnemyRocket,
		X:      x,
		Y:      y,
		VY:     float64(rng.Between(config.RocketMinSpeed, config.RocketMaxSpeed)),
		Scale:  scale,
		Points: config.ScoreRocket,
	}
}

// NewStrike creates a striking enemy that fires on a fixed interval.
func NewStrike(x, y, scale float64, rng Rand) *Entity {
	return &Entity{
		Kind:          KindEnemyStrike,
		X:             x,
		Y:             y,
		VY:            float64(rng.Between(config.StrikeMinSpeed, config.StrikeMaxSpeed)),
		Scale:         scale,
		Points:        config.ScoreStrike,
		Firing:        true,
		FireCountdown: config.Ticks(config.StrikeFireInterval),
	}
}

// NewUfo creates a UFO that drifts until it spots the player.
func NewUfo(x, y, scale float64, rng Rand) *Entity {
	return &Entity{
		Kind:   KindEnemyUfo,
		X:      x,
		Y:      y,
		VY:     float64(rng.Between(config.UfoMinSpeed, config.UfoMaxSpeed)),
		Scale:  scale,
		Points: config.ScoreUfo,
	}
}

// NewLaserEnemy creates a laser fired downward by an enemy.
func NewLaserEnemy(x, y, scale float64) *Entity {
	return &Entity{Kind: KindLaserEnemy, X: x, Y: y, VY: config.LaserEnemySpeed, Scale: scale}
}

// NewLaserPlayer creates a laser fired upward by the player.
func NewLaserPlayer(x, y, scale float64) *Entity {
	return &Entity{Kind: KindLaserPlayer, X: x, Y: y, VY: config.LaserPlayerSpeed, Scale: scale}
}

// NewEnemy creates an enemy of the given kind. Non-enemy kinds return nil.
func NewEnemy(kind Kind, x, y, scale float64, rng Rand) *Entity {
	switch kind {
	case KindEnemyRocket:
		return NewRocket(x, y, scale, rng)
	case KindEnemyStrike:
		return NewStrike(x, y, scale, rng)
	case KindEnemyUfo:
		return NewUfo(x, y, scale, rng)
	default:
		return nil
	}
}
