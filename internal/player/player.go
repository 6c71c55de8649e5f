// Package player implements the player ship: health, post-hit grace and shot cadence.
package player

import (
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/physics"
)

// State is the health state of the player.
type State int

const (
	Active State = iota
	Grace        // invulnerable after a hit, cannot shoot
	Dead         // terminal
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Grace:
		return "grace"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Controls is the per-tick input the ship reacts to.
type Controls struct {
	Up, Down, Left, Right bool
	Fire                  bool
}

// Player is the ship entity plus its state machine.
type Player struct {
	Body *object.Entity

	health    int
	state     State
	graceLeft int
	gameOver  bool

	shooting  bool
	shootTick int
}

// New creates an active player with full health at (x, y).
func New(x, y, scale float64) *Player {
	return &Player{
		Body:      object.NewPlayer(x, y, scale),
		health:    config.PlayerHealth,
		state:     Active,
		shootTick: config.PlayerShootingDelay - 1,
	}
}

// Health returns the remaining health. It can go below zero.
func (p *Player) Health() int { return p.health }

// State returns the current health state.
func (p *Player) State() State { return p.state }

// InGrace reports whether the post-hit invulnerability window is open.
func (p *Player) InGrace() bool { return p.state == Grace }

// IsDead reports whether the player has died.
func (p *Player) IsDead() bool { return p.state == Dead }

// Shooting reports whether the ship is currently firing.
func (p *Player) Shooting() bool { return p.shooting }

// GraceLeft returns the ticks of invulnerability remaining.
func (p *Player) GraceLeft() int { return p.graceLeft }

// Opacity is the render alpha: reduced while in grace.
func (p *Player) Opacity() float64 {
	if p.state == Grace {
		return config.GraceOpacity
	}
	return 1
}

// TakeDamage subtracts a fixed amount of health. A non-lethal hit opens the
// grace window; the hit that brings health to zero or below moves the player
// to Dead and returns true. Only that one call ever returns true.
func (p *Player) TakeDamage(amount int) (died bool) {
	p.health -= amount
	if p.gameOver {
		return false
	}
	if p.health <= 0 {
		p.state = Dead
		p.gameOver = true
		p.graceLeft = 0
		p.stopShooting()
		p.Body.Dead = true
		return true
	}
	p.state = Grace
	p.graceLeft = config.PlayerGraceTicks
	p.stopShooting()
	return false
}

// TickGrace advances the grace countdown, returning to Active when it runs out.
func (p *Player) TickGrace() {
	if p.state != Grace {
		return
	}
	p.graceLeft--
	if p.graceLeft <= 0 {
		p.graceLeft = 0
		p.state = Active
	}
}

// Update moves the ship within the field and handles shooting.
// Returns the laser fired this tick, if any. A dead player does nothing.
func (p *Player) Update(in Controls, field object.Field) *object.Entity {
	if p.state == Dead {
		return nil
	}
	b := p.Body
	b.VX, b.VY = 0, 0
	if in.Up {
		b.VY = -config.PlayerSpeed
	} else if in.Down {
		b.VY = config.PlayerSpeed
	}
	if in.Left {
		b.VX = -config.PlayerSpeed
	} else if in.Right {
		b.VX = config.PlayerSpeed
	}
	b.Integrate()
	b.X = physics.Clamp(b.X, 0, field.Width)
	b.Y = physics.Clamp(b.Y, 0, field.Height)

	if p.state == Grace || !in.Fire {
		p.stopShooting()
		return nil
	}
	p.shooting = true
	if p.shootTick < config.PlayerShootingDelay {
		p.shootTick++
		return nil
	}
	p.shootTick = 0
	return object.NewLaserPlayer(b.X, b.Y, b.Scale)
}

// stopShooting parks the cadence counter one short of the delay so the next
// press fires on its second tick.
func (p *Player) stopShooting() {
	p.shooting = false
	p.shootTick = config.PlayerShootingDelay - 1
}
