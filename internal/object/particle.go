package object

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/tomz197/galactic/internal/loop/config"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment. Purely visual.
type Particle struct {
	X, Y        float64
	VX, VY      float64
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64
	Symbol      rune
}

var explosionSymbols = []rune{'#', '@', '*', '%', 'X', 'O', '+'}

// newParticle takes a particle from the pool.
func newParticle(x, y, vx, vy, lifetime float64, symbol rune) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{X: x, Y: y, VX: vx, VY: vy, Lifetime: lifetime, MaxLifetime: lifetime, Symbol: symbol}
	return p
}

// Release returns the particle to the pool. The caller must drop its reference.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Explode appends a circular burst of particles sized to the entity.
func Explode(dst []*Particle, e *Entity) []*Particle {
	count := 6 + int(e.DisplaySize()/8)
	speed := 60 + e.DisplaySize()
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rand.Float64())
		life := 0.6 * (0.5 + rand.Float64()*0.5)
		dst = append(dst, newParticle(
			e.X, e.Y,
			math.Cos(angle)*spd, math.Sin(angle)*spd,
			life,
			explosionSymbols[rand.IntN(len(explosionSymbols))],
		))
	}
	return dst
}

// Update advances the particle one tick. Returns true when it has expired.
func (p *Particle) Update() bool {
	p.Lifetime -= config.TickSeconds
	if p.Lifetime <= 0 {
		return true
	}
	const drag = 0.95
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * config.TickSeconds
	p.Y += p.VY * config.TickSeconds
	return false
}

// Faded reports whether the particle is in the last quarter of its life.
func (p *Particle) Faded() bool {
	return p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25
}
