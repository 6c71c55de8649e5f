package player

import (
	"testing"

	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
)

func newTestPlayer() *Player {
	return New(360, 1150, config.DesktopEntityScale)
}

func TestNonLethalHitsReduceHealth(t *testing.T) {
	for n := 0; n < 10; n++ {
		p := newTestPlayer()
		for i := 0; i < n; i++ {
			if p.TakeDamage(config.PlayerDamagePerHit) {
				t.Fatalf("hit %d of %d reported death", i+1, n)
			}
		}
		want := config.PlayerHealth - n*config.PlayerDamagePerHit
		if p.Health() != want {
			t.Fatalf("health after %d hits = %d, want %d", n, p.Health(), want)
		}
	}
}

func TestFifteenHitsFireGameOverOnce(t *testing.T) {
	p := newTestPlayer()
	deaths := 0
	for i := 1; i <= 15; i++ {
		if p.TakeDamage(10) {
			deaths++
			if i != 10 {
				t.Fatalf("death reported on hit %d, want 10", i)
			}
			if p.Health() != 0 {
				t.Fatalf("health at death = %d, want 0", p.Health())
			}
		}
	}
	if deaths != 1 {
		t.Fatalf("game over fired %d times, want 1", deaths)
	}
	if p.Health() != -50 {
		t.Fatalf("health after 15 hits = %d, want -50", p.Health())
	}
	if p.State() != Dead || !p.Body.Dead {
		t.Fatalf("state = %s, body dead = %v", p.State(), p.Body.Dead)
	}
}

func TestGraceLifecycle(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(10)
	if !p.InGrace() || p.Opacity() != config.GraceOpacity {
		t.Fatalf("expected grace at reduced opacity, got %s %f", p.State(), p.Opacity())
	}
	for i := 0; i < config.PlayerGraceTicks-1; i++ {
		p.TickGrace()
		if !p.InGrace() {
			t.Fatalf("grace ended early after %d ticks", i+1)
		}
	}
	p.TickGrace()
	if p.State() != Active || p.Opacity() != 1 {
		t.Fatalf("expected active after %d ticks, got %s", config.PlayerGraceTicks, p.State())
	}
}

func TestDeadIsTerminal(t *testing.T) {
	p := newTestPlayer()
	for !p.IsDead() {
		p.TakeDamage(10)
	}
	for i := 0; i < 500; i++ {
		p.TickGrace()
	}
	if p.State() != Dead {
		t.Fatalf("dead player moved to %s", p.State())
	}
	x, y := p.Body.X, p.Body.Y
	if l := p.Update(Controls{Left: true, Fire: true}, object.DefaultField()); l != nil {
		t.Fatal("dead player fired")
	}
	if p.Body.X != x || p.Body.Y != y {
		t.Fatal("dead player moved")
	}
}

func TestShootingCadence(t *testing.T) {
	p := newTestPlayer()
	field := object.DefaultField()
	hold := Controls{Fire: true}

	var fired []int
	for tick := 1; tick <= 30; tick++ {
		if l := p.Update(hold, field); l != nil {
			if l.Kind != object.KindLaserPlayer || l.VY != config.LaserPlayerSpeed {
				t.Fatalf("unexpected laser %+v", l)
			}
			fired = append(fired, tick)
		}
	}
	// First shot on the second tick, then every delay+1 ticks.
	want := []int{2, 13, 24}
	if len(fired) != len(want) {
		t.Fatalf("fired on ticks %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired on ticks %v, want %v", fired, want)
		}
	}

	p.Update(Controls{}, field)
	if p.Shooting() {
		t.Fatal("releasing fire should stop shooting")
	}
	p.Update(hold, field)
	if l := p.Update(hold, field); l == nil {
		t.Fatal("re-press should fire on its second tick")
	}
}

func TestGraceDisablesShooting(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(10)
	for i := 0; i < config.PlayerGraceTicks-1; i++ {
		if l := p.Update(Controls{Fire: true}, object.DefaultField()); l != nil {
			t.Fatalf("fired during grace on tick %d", i)
		}
		if p.Shooting() {
			t.Fatal("shooting flag set during grace")
		}
		p.TickGrace()
	}
}

func TestMovementClampedToField(t *testing.T) {
	p := New(5, 5, 1)
	field := object.Field{Width: 100, Height: 100}
	for i := 0; i < 10; i++ {
		p.Update(Controls{Up: true, Left: true}, field)
	}
	if p.Body.X != 0 || p.Body.Y != 0 {
		t.Fatalf("position = (%f,%f), want clamped to (0,0)", p.Body.X, p.Body.Y)
	}
	p.Update(Controls{Down: true, Right: true}, field)
	step := config.PlayerSpeed * config.TickSeconds
	if p.Body.X != step || p.Body.Y != step {
		t.Fatalf("position = (%f,%f), want (%f,%f)", p.Body.X, p.Body.Y, step, step)
	}
	p.Update(Controls{Up: true, Down: true}, field)
	if p.Body.Y != 0 {
		t.Fatalf("up should win over down, y = %f", p.Body.Y)
	}
}
