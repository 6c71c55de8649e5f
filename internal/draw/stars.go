package draw

import (
	"math/rand/v2"

	"github.com/tomz197/galactic/internal/loop/config"
)

// Star is one point of the scrolling background, in logical coordinates.
type Star struct {
	X, Y  float64
	Speed float64 // units/sec
}

// Starfield is the scrolling background behind every scene. Both frontends
// advance it once per frame.
type Starfield struct {
	width, height float64
	stars         []Star
}

// NewStarfield scatters n stars over a width x height area.
func NewStarfield(width, height float64, n int) *Starfield {
	sf := &Starfield{width: width, height: height, stars: make([]Star, n)}
	for i := range sf.stars {
		sf.stars[i] = Star{
			X:     rand.Float64() * width,
			Y:     rand.Float64() * height,
			Speed: config.StarMinSpeed + rand.Float64()*(config.StarMaxSpeed-config.StarMinSpeed),
		}
	}
	return sf
}

// Advance scrolls the stars down by one frame, wrapping at the bottom.
func (sf *Starfield) Advance() {
	for i := range sf.stars {
		s := &sf.stars[i]
		s.Y += s.Speed * config.TickSeconds
		if s.Y >= sf.height {
			s.Y -= sf.height
			s.X = rand.Float64() * sf.width
		}
	}
}

// Stars returns the current star positions. Read only.
func (sf *Starfield) Stars() []Star {
	return sf.stars
}

// Draw plots the stars on the canvas in dim ink.
func (sf *Starfield) Draw(c *Canvas) {
	c.SetInk(InkDim)
	for _, s := range sf.stars {
		c.SetFloat(s.X, s.Y)
	}
}
