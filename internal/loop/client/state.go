package client

import (
	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/game"
)

// ClientState holds the per-connection view state. The game itself lives in
// the server; this is only what the renderer needs between frames.
type ClientState struct {
	Input        game.Input
	Running      bool
	termSizeFunc draw.TermSizeFunc
	isInactive   bool
	stars        *draw.Starfield
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{Running: true}
}
