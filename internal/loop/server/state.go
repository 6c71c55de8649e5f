package server

import (
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/platform"
)

// Sprite is one entity as the renderers see it.
type Sprite struct {
	Kind    object.Kind
	X, Y    float64
	Radius  float64
	Angle   float64
	Opacity float64 // 1 is fully opaque
}

// Spark is one explosion particle.
type Spark struct {
	X, Y   float64
	Symbol rune
	Faded  bool
}

// Snapshot is an immutable copy of a session for rendering.
// A new one is published after every tick; readers must not modify it.
type Snapshot struct {
	Scene    game.Scene
	Field    object.Field
	Sprites  []Sprite
	Sparks   []Spark
	Tick     int
	Done     bool
	Products []platform.Product

	// HUD
	Health    int
	Score     int // displayed (animated) score
	Rate      int
	Tier      string
	Best      int
	LastScore int
	User      string
	Alert     string
	Notice    string
	Pending   bool // game over is counting down
}

// Capture copies everything the renderers need out of the session.
func Capture(s *game.Session, tick int) *Snapshot {
	snap := &Snapshot{
		Scene:     s.Scene(),
		Field:     object.DefaultField(),
		Tick:      tick,
		Done:      s.Done(),
		Products:  s.Products(),
		Rate:      s.ScoreRate(),
		Best:      s.Best(),
		LastScore: s.LastScore(),
		User:      s.User(),
		Alert:     s.Alert(),
		Notice:    s.Notice(),
		Pending:   s.GameOverPending(),
	}

	w := s.World()
	if w == nil {
		return snap
	}
	snap.Field = w.Field
	snap.Health = w.Player.Health()
	snap.Score = w.Board.Displayed()
	snap.Rate = w.Board.Rate()
	snap.Tier = w.Scheduler.Tier().Name

	n := len(w.Enemies) + len(w.EnemyLasers) + len(w.PlayerLasers) + 1
	snap.Sprites = make([]Sprite, 0, n)
	add := func(e *object.Entity, opacity float64) {
		if e.Dead {
			return
		}
		snap.Sprites = append(snap.Sprites, Sprite{
			Kind:    e.Kind,
			X:       e.X,
			Y:       e.Y,
			Radius:  e.HitRadius(),
			Angle:   e.Angle,
			Opacity: opacity,
		})
	}
	for _, e := range w.Enemies {
		add(e, 1)
	}
	for _, e := range w.EnemyLasers {
		add(e, 1)
	}
	for _, e := range w.PlayerLasers {
		add(e, 1)
	}
	add(w.Player.Body, w.Player.Opacity())

	snap.Sparks = make([]Spark, 0, len(w.Particles))
	for _, p := range w.Particles {
		snap.Sparks = append(snap.Sparks, Spark{X: p.X, Y: p.Y, Symbol: p.Symbol, Faded: p.Faded()})
	}
	return snap
}
