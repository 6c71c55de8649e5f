package world

import (
	"errors"
	"testing"
	"time"

	"github.com/tomz197/galactic/internal/collision"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/player"
)

type lowRand struct{}

func (lowRand) Between(lo, hi int) int { return lo }

// quietOptions disables scheduled spawns so tests control the population.
func quietOptions() Options {
	opts := DesktopOptions(lowRand{})
	for i := range opts.Tiers {
		opts.Tiers[i].Delay = time.Hour
	}
	return opts
}

func TestCountIncludesQueued(t *testing.T) {
	w := New(quietOptions())
	w.Spawn(object.NewRocket(10, 10, 0.5, lowRand{}))
	if got := w.Count(object.KindEnemyRocket); got != 1 {
		t.Fatalf("Count = %d before flush, want 1", got)
	}
	w.Step(player.Controls{})
	if got := w.Count(object.KindEnemyRocket); got != 1 || len(w.Enemies) != 1 {
		t.Fatalf("Count = %d, enemies = %d after flush", got, len(w.Enemies))
	}
}

func TestCullingRunsDestroyHook(t *testing.T) {
	w := New(quietOptions())
	strike := object.NewStrike(100, w.Field.Height+1000, 0.5, lowRand{})
	w.Enemies = append(w.Enemies, strike)
	w.Step(player.Controls{})
	if len(w.Enemies) != 0 {
		t.Fatalf("enemies = %d, want culled", len(w.Enemies))
	}
	if !strike.Dead || strike.Firing {
		t.Fatalf("culled strike dead=%v firing=%v", strike.Dead, strike.Firing)
	}
}

func TestStrikeLaserJoinsWorld(t *testing.T) {
	w := New(quietOptions())
	strike := object.NewStrike(100, 100, 0.5, lowRand{})
	strike.FireCountdown = 1
	w.Enemies = append(w.Enemies, strike)
	w.Step(player.Controls{})
	if len(w.EnemyLasers) != 1 {
		t.Fatalf("enemy lasers = %d, want 1", len(w.EnemyLasers))
	}
	if l := w.EnemyLasers[0]; l.Kind != object.KindLaserEnemy || l.VY != 200 {
		t.Fatalf("unexpected laser %+v", l)
	}
}

func TestEnemyLaserHitsPlayer(t *testing.T) {
	w := New(quietOptions())
	b := w.Player.Body
	w.EnemyLasers = append(w.EnemyLasers, object.NewLaserEnemy(b.X, b.Y, 0.5))
	f := w.Step(player.Controls{})
	if len(f.Events) != 1 || f.Events[0].Kind != collision.PlayerHit {
		t.Fatalf("unexpected events %+v", f.Events)
	}
	if w.Player.Health() != 90 || !w.Player.InGrace() {
		t.Fatalf("health=%d state=%s", w.Player.Health(), w.Player.State())
	}
	if len(w.EnemyLasers) != 0 {
		t.Fatal("laser should be removed")
	}
}

func TestShootingDownRocket(t *testing.T) {
	w := New(quietOptions())
	rocket := object.NewRocket(w.Player.Body.X, 500, 0.5, lowRand{})
	w.Enemies = append(w.Enemies, rocket)

	fired := false
	for i := 0; i < 400 && w.Board.Total() == 0; i++ {
		if w.Step(player.Controls{Fire: true}).Fired {
			fired = true
		}
	}
	if !fired {
		t.Fatal("player never fired")
	}
	if w.Board.Total() != 30 {
		t.Fatalf("score = %d, want 30", w.Board.Total())
	}
	if !rocket.Dead || w.Count(object.KindEnemyRocket) != 0 {
		t.Fatal("rocket should be destroyed")
	}
	if len(w.Particles) == 0 {
		t.Fatal("expected an explosion")
	}
	if w.Player.Health() != 100 {
		t.Fatalf("health = %d, want 100", w.Player.Health())
	}
}

func TestDisplayedScoreLagsTotal(t *testing.T) {
	w := New(quietOptions())
	w.Board.Credit(5)
	w.Step(player.Controls{})
	if w.Board.Displayed() != 1 {
		t.Fatalf("displayed = %d, want 1", w.Board.Displayed())
	}
}

func TestPopulationStaysWithinCaps(t *testing.T) {
	opts := DesktopOptions(object.NewRand(3))
	w := New(opts)
	spawned := 0
	for i := 0; i < 6000; i++ {
		if w.Step(player.Controls{Fire: true, Left: i%200 < 100, Right: i%200 >= 100}).Spawned != nil {
			spawned++
		}
		tier := w.Scheduler.Tier()
		caps := map[object.Kind]int{
			object.KindEnemyRocket: tier.RocketCount,
			object.KindEnemyStrike: tier.StrikeCount,
			object.KindEnemyUfo:    tier.UfoCount,
		}
		for kind, limit := range caps {
			if n := w.Count(kind); n > limit {
				t.Fatalf("tick %d: %d %s alive, cap %d", i, n, kind, limit)
			}
		}
	}
	if spawned == 0 {
		t.Fatal("scheduler never spawned")
	}
	w.Release()
}

func TestMobileProfileScales(t *testing.T) {
	opts, err := OptionsFor(ProfileMobile, object.NewRand(7))
	if err != nil {
		t.Fatal(err)
	}
	w := New(opts)
	if w.Player.Body.Scale != config.MobileEntityScale {
		t.Fatalf("ship scale = %f, want %f", w.Player.Body.Scale, config.MobileEntityScale)
	}

	spawned := 0
	for i := 0; i < 60*config.TickRate; i++ {
		f := w.Step(player.Controls{})
		if e := f.Spawned; e != nil {
			spawned++
			if e.Scale < 0.45-1e-9 || e.Scale > 0.9+1e-9 {
				t.Fatalf("enemy scale %f outside [0.45, 0.9]", e.Scale)
			}
		}
	}
	if spawned == 0 {
		t.Fatal("no enemies spawned in a minute")
	}

	if _, err := OptionsFor("watch", nil); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
	if d, _ := OptionsFor("", nil); d.EnemyFactor != config.DesktopEnemyFactor {
		t.Fatalf("empty profile should be desktop, got %+v", d)
	}
}

func TestGraceCoversFullWindowAfterHit(t *testing.T) {
	w := New(quietOptions())
	b := w.Player.Body
	w.EnemyLasers = append(w.EnemyLasers, object.NewLaserEnemy(b.X, b.Y, 0.5))
	w.Step(player.Controls{})
	if !w.Player.InGrace() {
		t.Fatal("expected grace after the hit")
	}

	protected := 0
	for {
		w.EnemyLasers = append(w.EnemyLasers[:0], object.NewLaserEnemy(b.X, b.Y, 0.5))
		f := w.Step(player.Controls{})
		if len(f.Events) > 0 {
			break
		}
		protected++
		if protected > 2*config.PlayerGraceTicks {
			t.Fatal("grace never ended")
		}
	}
	if protected != config.PlayerGraceTicks {
		t.Fatalf("grace protected %d collision passes, want %d", protected, config.PlayerGraceTicks)
	}
	if w.Player.Health() != config.PlayerHealth-2*config.PlayerDamagePerHit {
		t.Fatalf("health = %d after the second hit", w.Player.Health())
	}
}
