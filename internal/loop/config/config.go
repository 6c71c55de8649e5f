// Package config centralizes all tunable game parameters.
package config

import "time"

// Play field - the logical coordinate space of the simulation.
// Frontends scale it to whatever they render on.
const (
	FieldWidth  = 720
	FieldHeight = 1280
)

// Tick rate. All countdowns below are expressed in ticks.
const (
	TickRate    = 60
	TickTime    = time.Second / TickRate
	TickSeconds = 1.0 / TickRate
)

// Ticks converts a wall-clock duration to whole ticks (at least 1).
func Ticks(d time.Duration) int {
	n := int(d / TickTime)
	if n < 1 {
		return 1
	}
	return n
}

// Player
const (
	PlayerHealth        = 100
	PlayerDamagePerHit  = 10
	PlayerSpeed         = 300.0 // units/sec on each axis
	PlayerShootingDelay = 10    // ticks between lasers while fire is held
	PlayerGraceTicks    = 180   // invulnerability after a hit
	PlayerStartX        = 0.5   // fraction of field width
	PlayerStartY        = 0.9   // fraction of field height
	GraceOpacity        = 0.5
)

// Game over
const (
	GameOverDelay = 2 * time.Second
)

// Enemies
const (
	ScoreRocket = 30
	ScoreStrike = 20
	ScoreUfo    = 40

	RocketMinSpeed = 40
	RocketMaxSpeed = 300
	StrikeMinSpeed = 40
	StrikeMaxSpeed = 200
	UfoMinSpeed    = 40
	UfoMaxSpeed    = 180

	StrikeFireInterval = 2 * time.Second
	UfoChaseRadius     = 600.0
	UfoChaseSpeed      = 200.0
	UfoTurnLeft        = -8.0 // degrees per tick while the player is to the right
	UfoTurnRight       = 22.0 // degrees per tick otherwise

	EnemyMinScale = 30
	EnemyMaxScale = 60
)

// Lasers (negative is up)
const (
	LaserPlayerSpeed = -225.0
	LaserEnemySpeed  = 200.0
)

// Platform scale profiles.
const (
	DesktopEntityScale = 0.8
	MobileEntityScale  = 1.5
	DesktopEnemyFactor = 0.01
	MobileEnemyFactor  = 0.015
)

// Score
const (
	DefaultScoreRate = 1
)

// Shop multipliers offered as consumable products.
var ShopMultipliers = []int{2, 3, 4, 6}

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	StarCount             = 60
	StarMinSpeed          = 20.0 // units/sec
	StarMaxSpeed          = 90.0
)

// Inactivity (SSH sessions)
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)
