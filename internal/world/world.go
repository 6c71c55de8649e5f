// Package world owns every entity of a run and advances them one tick at a time.
package world

import (
	"errors"
	"fmt"

	"github.com/tomz197/galactic/internal/collision"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/player"
	"github.com/tomz197/galactic/internal/score"
	"github.com/tomz197/galactic/internal/spawn"
)

// Options configures a new World.
type Options struct {
	Field       object.Field
	Tiers       spawn.Tiers
	Rand        object.Rand
	EntityScale float64 // player and laser scale
	EnemyFactor float64 // multiplier for the enemy size roll
	ScoreRate   int
}

// DesktopOptions returns options for the desktop scale profile.
func DesktopOptions(rng object.Rand) Options {
	return Options{
		Field:       object.DefaultField(),
		Tiers:       spawn.DefaultTiers(),
		Rand:        rng,
		EntityScale: config.DesktopEntityScale,
		EnemyFactor: config.DesktopEnemyFactor,
		ScoreRate:   config.DefaultScoreRate,
	}
}

// MobileOptions returns options for the mobile scale profile: a larger ship
// and a larger enemy size roll on the same field.
func MobileOptions(rng object.Rand) Options {
	opts := DesktopOptions(rng)
	opts.EntityScale = config.MobileEntityScale
	opts.EnemyFactor = config.MobileEnemyFactor
	return opts
}

// Scale profile names accepted by OptionsFor.
const (
	ProfileDesktop = "desktop"
	ProfileMobile  = "mobile"
)

var ErrUnknownProfile = errors.New("unknown scale profile")

// OptionsFor returns the options of a named scale profile.
// An empty name is the desktop profile.
func OptionsFor(profile string, rng object.Rand) (Options, error) {
	switch profile {
	case "", ProfileDesktop:
		return DesktopOptions(rng), nil
	case ProfileMobile:
		return MobileOptions(rng), nil
	default:
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownProfile, profile)
	}
}

// Frame summarizes what happened during one Step.
type Frame struct {
	Events  []collision.Event
	Fired   bool           // the player fired a laser
	Spawned *object.Entity // enemy added by the scheduler, if any
}

// World holds the game state of one run.
type World struct {
	Field     object.Field
	Player    *player.Player
	Board     *score.Board
	Scheduler *spawn.Scheduler

	Enemies      []*object.Entity
	EnemyLasers  []*object.Entity
	PlayerLasers []*object.Entity
	Particles    []*object.Particle

	resolver *collision.Resolver
	toSpawn  []*object.Entity // Entities to add after the current tick
	ticks    int
}

// New creates a world with the player at its start position.
func New(opts Options) *World {
	if opts.Rand == nil {
		opts.Rand = object.NewRand(0)
	}
	board := score.NewBoard(opts.ScoreRate)
	return &World{
		Field: opts.Field,
		Player: player.New(
			opts.Field.Width*config.PlayerStartX,
			opts.Field.Height*config.PlayerStartY,
			opts.EntityScale,
		),
		Board:     board,
		Scheduler: spawn.NewScheduler(opts.Tiers, opts.Rand, opts.Field, opts.EnemyFactor),
		resolver:  collision.NewResolver(opts.Field, board),
	}
}

// Ticks returns how many steps have run.
func (w *World) Ticks() int { return w.ticks }

// Spawn queues an entity to be added after the current tick.
// Implements object.Spawner.
func (w *World) Spawn(e *object.Entity) {
	if e == nil {
		return
	}
	w.toSpawn = append(w.toSpawn, e)
}

// Count returns the live enemies of a kind, including ones queued this tick.
// Implements spawn.Population.
func (w *World) Count(kind object.Kind) int {
	n := 0
	for _, e := range w.Enemies {
		if e.Kind == kind && !e.Dead {
			n++
		}
	}
	for _, e := range w.toSpawn {
		if e.Kind == kind && !e.Dead {
			n++
		}
	}
	return n
}

// Step runs one tick. Collisions are resolved first, on the positions the
// previous tick left behind; then the player, enemies, enemy lasers, player
// lasers, the score display, the spawner and particles update in that order.
func (w *World) Step(in player.Controls) Frame {
	w.ticks++
	var f Frame

	// A hit taken this tick opens a full grace window starting next tick.
	wasInGrace := w.Player.InGrace()
	f.Events = w.resolver.Resolve(w.Player, w.Enemies, w.EnemyLasers, w.PlayerLasers)
	for _, ev := range f.Events {
		if ev.Source.Kind.IsEnemy() {
			w.Particles = object.Explode(w.Particles, ev.Source)
		}
		if ev.Kind == collision.PlayerDied {
			w.Particles = object.Explode(w.Particles, w.Player.Body)
		}
	}

	if wasInGrace {
		w.Player.TickGrace()
	}
	if laser := w.Player.Update(in, w.Field); laser != nil {
		w.Spawn(laser)
		f.Fired = true
	}

	ctx := object.UpdateContext{Field: w.Field, Player: w.Player.Body, Spawner: w}
	w.updateAll(w.Enemies, ctx)
	w.updateAll(w.EnemyLasers, ctx)
	w.updateAll(w.PlayerLasers, ctx)

	w.Board.Tick()

	if e := w.Scheduler.Tick(w.Board.Total(), w); e != nil {
		w.Spawn(e)
		f.Spawned = e
	}

	w.updateParticles()
	w.flush()
	return f
}

// updateAll advances entities and culls the ones that left the field.
func (w *World) updateAll(entities []*object.Entity, ctx object.UpdateContext) {
	for _, e := range entities {
		if e.Dead {
			continue
		}
		e.Update(ctx)
		if e.OutOfBounds(w.Field) {
			e.Destroy()
		}
	}
}

func (w *World) updateParticles() {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		if p.Update() {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Particles[len(kept):])
	w.Particles = kept
}

// flush drops destroyed entities and adds the queued ones.
func (w *World) flush() {
	w.Enemies = compact(w.Enemies)
	w.EnemyLasers = compact(w.EnemyLasers)
	w.PlayerLasers = compact(w.PlayerLasers)

	for _, e := range w.toSpawn {
		if e.Dead {
			continue
		}
		switch {
		case e.Kind.IsEnemy():
			w.Enemies = append(w.Enemies, e)
		case e.Kind == object.KindLaserEnemy:
			w.EnemyLasers = append(w.EnemyLasers, e)
		case e.Kind == object.KindLaserPlayer:
			w.PlayerLasers = append(w.PlayerLasers, e)
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

func compact(entities []*object.Entity) []*object.Entity {
	kept := entities[:0]
	for _, e := range entities {
		if !e.Dead {
			kept = append(kept, e)
		}
	}
	clear(entities[len(kept):])
	return kept
}

// Release returns pooled particles. The world must not be stepped afterwards.
func (w *World) Release() {
	for _, p := range w.Particles {
		p.Release()
	}
	w.Particles = nil
}
