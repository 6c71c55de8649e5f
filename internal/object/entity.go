// Package object defines the game entities and their per-kind behaviours.
package object

import (
	"math"

	"github.com/tomz197/galactic/internal/loop/config"
)

// Kind tags what an Entity is. Behaviour is looked up by kind.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemyRocket
	KindEnemyStrike
	KindEnemyUfo
	KindLaserEnemy
	KindLaserPlayer
	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:      "Player",
	KindEnemyRocket: "EnemyRocket",
	KindEnemyStrike: "EnemyStrike",
	KindEnemyUfo:    "EnemyUfo",
	KindLaserEnemy:  "LaserEnemy",
	KindLaserPlayer: "LaserPlayer",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// IsEnemy reports whether the kind is one of the three enemy archetypes.
func (k Kind) IsEnemy() bool {
	return k == KindEnemyRocket || k == KindEnemyStrike || k == KindEnemyUfo
}

// Base collision radii before scaling, in field units.
var kindRadii = [kindCount]float64{
	KindPlayer:      48,
	KindEnemyRocket: 60,
	KindEnemyStrike: 60,
	KindEnemyUfo:    64,
	KindLaserEnemy:  12,
	KindLaserPlayer: 12,
}

// Field is the bounded play area.
type Field struct {
	Width  float64
	Height float64
}

// DefaultField returns the standard play field.
func DefaultField() Field {
	return Field{Width: config.FieldWidth, Height: config.FieldHeight}
}

// Entity is a positioned, scaled actor. One record type serves every kind.
type Entity struct {
	Kind   Kind
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity, units/sec
	Angle  float64 // Rotation in degrees
	Scale  float64
	Points int  // Score credited for destroying it
	Dead   bool // Exploded or otherwise finished; removed at the end of the tick

	// Strike
	Firing        bool
	FireCountdown int // Ticks until the next laser

	// UFO
	Chasing bool
}

// HitRadius returns the scaled collision radius.
func (e *Entity) HitRadius() float64 {
	return kindRadii[e.Kind] * e.Scale
}

// DisplaySize returns the scaled on-screen extent (diameter).
func (e *Entity) DisplaySize() float64 {
	return 2 * e.HitRadius()
}

// Integrate advances the position by one tick of velocity.
func (e *Entity) Integrate() {
	e.X += e.VX * config.TickSeconds
	e.Y += e.VY * config.TickSeconds
}

// OutOfBounds reports whether the entity has left the field far enough to be culled.
// Enemies and player lasers get 6 display heights of headroom above the top edge,
// enemy lasers 4.
func (e *Entity) OutOfBounds(f Field) bool {
	size := e.DisplaySize()
	above := 6.0
	if e.Kind == KindLaserEnemy {
		above = 4.0
	}
	return e.X < -size ||
		e.X > f.Width+size ||
		e.Y < -size*above ||
		e.Y > f.Height+size
}

// Destroy runs the kind's cleanup hook and marks the entity dead.
// Destroying an already dead entity is a no-op.
func (e *Entity) Destroy() {
	if e == nil || e.Dead {
		return
	}
	behaviorFor(e.Kind).OnDestroy(e)
	e.Dead = true
}

// Update runs the kind's per-tick behaviour and then integrates velocity.
func (e *Entity) Update(ctx UpdateContext) {
	if e.Dead {
		return
	}
	behaviorFor(e.Kind).Update(e, ctx)
	e.Integrate()
}

// NormalizeAngle wraps degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
