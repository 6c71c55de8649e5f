package audio

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// ExplosionVariants is the number of distinct explosion sounds.
	ExplosionVariants = 4
)

// SoundManager mixes every cue onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	background  *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a manager. Call Initialize before playing anything.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops all sounds.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.background != nil {
		speaker.Lock()
		sm.background.Paused = true
		speaker.Unlock()
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.initialized = false
}

// PlayBackground starts the looping background track unless it is already playing.
func (sm *SoundManager) PlayBackground() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.background != nil {
		speaker.Lock()
		sm.background.Paused = false
		speaker.Unlock()
		return
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, NewDroneGenerator(sampleRate))}
	sm.background = ctrl
	sm.add(ctrl)
}

// StopBackground pauses the background track.
func (sm *SoundManager) StopBackground() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.background == nil {
		return
	}
	speaker.Lock()
	sm.background.Paused = true
	speaker.Unlock()
}

// PlayLaser plays a short falling zap.
func (sm *SoundManager) PlayLaser() {
	sm.playOnce(80*time.Millisecond, NewSweepGenerator(sampleRate, 1800, 600, 0.12))
}

// PlayExplosion plays one of the explosion variants at random.
func (sm *SoundManager) PlayExplosion() {
	v := rand.IntN(ExplosionVariants)
	sm.playOnce(350*time.Millisecond, NewNoiseBurstGenerator(sampleRate, 60+20*float64(v), uint32(v+1)))
}

// PlayDie plays the long descending death tone.
func (sm *SoundManager) PlayDie() {
	sm.playOnce(1200*time.Millisecond, NewSweepGenerator(sampleRate, 440, 55, 0.3))
}

func (sm *SoundManager) playOnce(d time.Duration, s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.add(beep.Take(sampleRate.N(d), s))
}

// add must be called with sm.mu held.
func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
