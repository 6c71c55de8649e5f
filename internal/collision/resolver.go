// Package collision resolves the pairwise overlaps of one tick and applies
// their outcomes: kills, score credit and player damage.
package collision

import (
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/physics"
	"github.com/tomz197/galactic/internal/player"
	"github.com/tomz197/galactic/internal/score"
)

// cellSize bounds enemy radius + laser radius for every shipped scale profile.
// Larger pairs fall back to a full scan.
const cellSize = 160.0

// EventKind says what a resolved collision did.
type EventKind int

const (
	EnemyShot  EventKind = iota // a player laser destroyed an enemy
	PlayerHit                   // the player took damage and survived
	PlayerDied                  // the hit that ended the run
)

func (k EventKind) String() string {
	switch k {
	case EnemyShot:
		return "enemy_shot"
	case PlayerHit:
		return "player_hit"
	case PlayerDied:
		return "player_died"
	default:
		return "unknown"
	}
}

// Event is one collision outcome. Source is the entity the player laser
// killed, or whatever hit the player.
type Event struct {
	Kind     EventKind
	Source   *object.Entity
	Credited int
}

// Resolver checks player lasers against enemies and the player against
// enemies and enemy lasers.
type Resolver struct {
	board  *score.Board
	grid   *physics.SpatialGrid
	reach  float64
	events []Event
}

// NewResolver creates a resolver crediting kills to board.
func NewResolver(field object.Field, board *score.Board) *Resolver {
	return &Resolver{
		board: board,
		grid:  physics.NewSpatialGrid(field.Width, field.Height, cellSize),
	}
}

// Resolve runs every reaction for one tick, in order: lasers against enemies,
// the player against enemies, the player against enemy lasers. The returned
// slice is reused by the next call.
func (r *Resolver) Resolve(p *player.Player, enemies, enemyLasers, playerLasers []*object.Entity) []Event {
	r.events = r.events[:0]
	r.shootEnemies(enemies, playerLasers)
	if p == nil {
		return r.events
	}
	for _, e := range enemies {
		r.Ram(p, e)
	}
	for _, l := range enemyLasers {
		r.Shot(p, l)
	}
	return r.events
}

func (r *Resolver) shootEnemies(enemies, lasers []*object.Entity) {
	if len(enemies) == 0 || len(lasers) == 0 {
		return
	}
	r.grid.Clear()
	r.reach = 0
	for i, e := range enemies {
		if e.Dead {
			continue
		}
		r.grid.Insert(e.X, e.Y, i)
		r.reach = max(r.reach, e.HitRadius())
	}
	for _, l := range lasers {
		if l.Dead {
			continue
		}
		if r.reach+l.HitRadius() > cellSize {
			for _, e := range enemies {
				if r.LaserHit(l, e) {
					break
				}
			}
			continue
		}
		r.grid.QueryAround(l.X, l.Y, func(i int) bool {
			return r.LaserHit(l, enemies[i])
		})
	}
}

// LaserHit destroys the enemy and the player laser when they overlap,
// crediting the enemy's points times the score rate. Dead participants are
// ignored, so applying it twice credits once.
func (r *Resolver) LaserHit(laser, enemy *object.Entity) bool {
	if laser == nil || enemy == nil || laser.Dead || enemy.Dead {
		return false
	}
	if !overlap(laser, enemy) {
		return false
	}
	enemy.Destroy()
	laser.Destroy()
	credited := r.board.Credit(enemy.Points)
	r.events = append(r.events, Event{Kind: EnemyShot, Source: enemy, Credited: credited})
	return true
}

// Ram handles the player flying into an enemy. The enemy is destroyed and the
// player damaged, unless the player is dead or in grace.
func (r *Resolver) Ram(p *player.Player, enemy *object.Entity) bool {
	if enemy == nil || enemy.Dead || !vulnerable(p) || !overlap(p.Body, enemy) {
		return false
	}
	enemy.Destroy()
	r.damage(p, enemy)
	return true
}

// Shot handles an enemy laser reaching the player.
func (r *Resolver) Shot(p *player.Player, laser *object.Entity) bool {
	if laser == nil || laser.Dead || !vulnerable(p) || !overlap(p.Body, laser) {
		return false
	}
	laser.Destroy()
	r.damage(p, laser)
	return true
}

func (r *Resolver) damage(p *player.Player, source *object.Entity) {
	kind := PlayerHit
	if p.TakeDamage(config.PlayerDamagePerHit) {
		kind = PlayerDied
	}
	r.events = append(r.events, Event{Kind: kind, Source: source})
}

func vulnerable(p *player.Player) bool {
	return p != nil && p.State() == player.Active
}

func overlap(a, b *object.Entity) bool {
	return physics.CirclesOverlap(a.X, a.Y, a.HitRadius(), b.X, b.Y, b.HitRadius())
}
