// Package audio plays the game's sound cues. Sounds are synthesized, so no
// asset files are needed.
package audio

// Sounds is the set of cues the game triggers.
type Sounds interface {
	PlayBackground()
	StopBackground()
	PlayLaser()
	PlayExplosion()
	PlayDie()
	Close()
}

// Silent is a Sounds that does nothing. Used over SSH and when no audio
// device is available.
type Silent struct{}

func (Silent) PlayBackground() {}
func (Silent) StopBackground() {}
func (Silent) PlayLaser()      {}
func (Silent) PlayExplosion()  {}
func (Silent) PlayDie()        {}
func (Silent) Close()          {}

var (
	_ Sounds = Silent{}
	_ Sounds = (*SoundManager)(nil)
)
