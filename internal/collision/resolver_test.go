package collision

import (
	"testing"

	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/player"
	"github.com/tomz197/galactic/internal/score"
)

type fixedRand int

func (f fixedRand) Between(lo, hi int) int { return lo }

func newResolver(rate int) (*Resolver, *score.Board) {
	b := score.NewBoard(rate)
	return NewResolver(object.DefaultField(), b), b
}

func TestLaserHitCreditsOnce(t *testing.T) {
	tests := []struct {
		name string
		kind object.Kind
		rate int
		want int
	}{
		{"rocket", object.KindEnemyRocket, 1, 30},
		{"strike", object.KindEnemyStrike, 1, 20},
		{"ufo", object.KindEnemyUfo, 1, 40},
		{"ufo x3", object.KindEnemyUfo, 3, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newResolver(tt.rate)
			enemy := object.NewEnemy(tt.kind, 100, 100, 0.5, fixedRand(0))
			laser := object.NewLaserPlayer(100, 110, 0.8)

			if !r.LaserHit(laser, enemy) {
				t.Fatal("expected a hit")
			}
			if r.LaserHit(laser, enemy) {
				t.Fatal("second application should be ignored")
			}
			if !enemy.Dead || !laser.Dead {
				t.Fatalf("enemy dead=%v laser dead=%v", enemy.Dead, laser.Dead)
			}
			if b.Total() != tt.want {
				t.Fatalf("score = %d, want %d", b.Total(), tt.want)
			}
		})
	}
}

func TestLaserHitStopsStrike(t *testing.T) {
	r, _ := newResolver(1)
	strike := object.NewStrike(200, 200, 0.5, fixedRand(0))
	r.LaserHit(object.NewLaserPlayer(200, 200, 0.8), strike)
	if strike.Firing {
		t.Fatal("destroyed strike still firing")
	}
}

func TestResolveLasersUseGrid(t *testing.T) {
	r, b := newResolver(1)
	near := object.NewRocket(300, 300, 0.5, fixedRand(0))
	far := object.NewRocket(600, 1000, 0.5, fixedRand(0))
	lasers := []*object.Entity{
		object.NewLaserPlayer(305, 300, 0.8),
		object.NewLaserPlayer(50, 50, 0.8),
	}
	events := r.Resolve(nil, []*object.Entity{near, far}, nil, lasers)
	if len(events) != 1 || events[0].Kind != EnemyShot || events[0].Source != near {
		t.Fatalf("unexpected events %+v", events)
	}
	if far.Dead || lasers[1].Dead {
		t.Fatal("non-overlapping entities destroyed")
	}
	if b.Total() != 30 {
		t.Fatalf("score = %d, want 30", b.Total())
	}
}

func TestOneLaserKillsOneEnemy(t *testing.T) {
	r, b := newResolver(1)
	a := object.NewRocket(300, 300, 0.5, fixedRand(0))
	c := object.NewRocket(302, 300, 0.5, fixedRand(0))
	r.Resolve(nil, []*object.Entity{a, c}, nil, []*object.Entity{object.NewLaserPlayer(301, 300, 0.8)})
	if a.Dead == c.Dead {
		t.Fatalf("exactly one enemy should die, got a=%v c=%v", a.Dead, c.Dead)
	}
	if b.Total() != 30 {
		t.Fatalf("score = %d, want 30", b.Total())
	}
}

func TestRamDamagesAndGrants(t *testing.T) {
	r, _ := newResolver(1)
	p := player.New(360, 1000, 0.8)
	enemy := object.NewRocket(360, 1000, 0.5, fixedRand(0))

	if !r.Ram(p, enemy) {
		t.Fatal("expected a ram")
	}
	if p.Health() != 90 || !p.InGrace() || !enemy.Dead {
		t.Fatalf("health=%d state=%s enemy dead=%v", p.Health(), p.State(), enemy.Dead)
	}

	second := object.NewRocket(360, 1000, 0.5, fixedRand(0))
	if r.Ram(p, second) {
		t.Fatal("player in grace should ignore collisions")
	}
	if second.Dead || p.Health() != 90 {
		t.Fatal("grace collision had an effect")
	}
}

func TestShotInGraceIsIgnored(t *testing.T) {
	r, _ := newResolver(1)
	p := player.New(360, 1000, 0.8)
	p.TakeDamage(10)
	laser := object.NewLaserEnemy(360, 1000, 0.5)
	if r.Shot(p, laser) {
		t.Fatal("expected no effect during grace")
	}
	if laser.Dead {
		t.Fatal("laser destroyed during grace")
	}
}

func TestDeadPlayerIgnoresCollisions(t *testing.T) {
	r, _ := newResolver(1)
	p := player.New(360, 1000, 0.8)
	for !p.IsDead() {
		p.TakeDamage(10)
	}
	enemy := object.NewRocket(360, 1000, 0.5, fixedRand(0))
	laser := object.NewLaserEnemy(360, 1000, 0.5)
	if r.Ram(p, enemy) || r.Shot(p, laser) {
		t.Fatal("dead player collided")
	}
	if p.Health() != 0 {
		t.Fatalf("health = %d, want 0", p.Health())
	}
}

func TestResolveOneHitPerTick(t *testing.T) {
	r, _ := newResolver(1)
	p := player.New(360, 1000, 0.8)
	enemies := []*object.Entity{
		object.NewRocket(360, 1000, 0.5, fixedRand(0)),
		object.NewRocket(361, 1000, 0.5, fixedRand(0)),
	}
	lasers := []*object.Entity{object.NewLaserEnemy(360, 1000, 0.5)}
	events := r.Resolve(p, enemies, lasers, nil)
	if len(events) != 1 || events[0].Kind != PlayerHit {
		t.Fatalf("unexpected events %+v", events)
	}
	if p.Health() != 90 {
		t.Fatalf("health = %d, want 90", p.Health())
	}
}

func TestFatalHitReportsDeath(t *testing.T) {
	r, _ := newResolver(1)
	p := player.New(360, 1000, 0.8)
	for i := 0; i < 9; i++ {
		p.TakeDamage(10)
		for p.InGrace() {
			p.TickGrace()
		}
	}
	events := r.Resolve(p, nil, []*object.Entity{object.NewLaserEnemy(360, 1000, 0.5)}, nil)
	if len(events) != 1 || events[0].Kind != PlayerDied {
		t.Fatalf("unexpected events %+v", events)
	}
	if !p.IsDead() {
		t.Fatal("player should be dead")
	}
}
