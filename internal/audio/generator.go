package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// DroneGenerator is a slow pulsing pad used as background music.
type DroneGenerator struct {
	sr     beep.SampleRate
	pos    int
	period int
}

// NewDroneGenerator creates the background drone.
func NewDroneGenerator(sr beep.SampleRate) *DroneGenerator {
	return &DroneGenerator{sr: sr, period: sr.N(4 * time.Second)}
}

func (g *DroneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		cycle := float64(g.pos%g.period) / float64(g.period)
		amp := 0.06 * (0.6 + 0.4*math.Sin(cycle*2*math.Pi))
		s := amp * (math.Sin(2*math.Pi*55*t) + 0.5*math.Sin(2*math.Pi*82.5*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *DroneGenerator) Err() error {
	return nil
}

// SweepGenerator glides from one frequency to another over one second and
// holds the final pitch after that.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	gain     float64
	pos      int
	phase    float64
}

// NewSweepGenerator creates a frequency sweep.
func NewSweepGenerator(sr beep.SampleRate, from, to, gain float64) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, gain: gain}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		k := math.Min(t, 1)
		freq := g.from + (g.to-g.from)*k
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		env := math.Exp(-t * 3)
		s := g.gain * env * math.Sin(g.phase)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// NoiseBurstGenerator is a decaying noise burst over a low rumble.
type NoiseBurstGenerator struct {
	sr     beep.SampleRate
	rumble float64
	seed   uint32
	pos    int
}

// NewNoiseBurstGenerator creates an explosion sound. Different seeds and
// rumble frequencies give audibly different variants.
func NewNoiseBurstGenerator(sr beep.SampleRate, rumble float64, seed uint32) *NoiseBurstGenerator {
	return &NoiseBurstGenerator{sr: sr, rumble: rumble, seed: seed}
}

func (g *NoiseBurstGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 9)
		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		s := env * (0.25*noise + 0.3*math.Sin(2*math.Pi*g.rumble*t))
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseBurstGenerator) Err() error {
	return nil
}
