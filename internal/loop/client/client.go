// Package client renders a session's snapshots to a terminal and feeds the
// player's keys back to its server.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/input"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/loop/server"
	"github.com/tomz197/galactic/internal/object"
)

// Key bytes with a meaning outside of flying.
const (
	keyEnter  = '\r'
	keyLF     = '\n'
	keyEscape = 0x1b
	keyCtrlC  = 0x03
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	theme        *draw.Theme
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	inactivity   bool
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Profile      termenv.Profile
	// DisconnectInactive ends idle connections; used for SSH sessions.
	DisconnectInactive bool
}

// NewClient creates a new client attached to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	state := NewClientState()
	state.termSizeFunc = termSizeFunc
	field := object.DefaultField()
	state.stars = draw.NewStarfield(field.Width, field.Height, config.StarCount)

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitField(termWidth, termHeight, field.Width, field.Height)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	canvas.SetPalette(opts.Profile)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		server:       gs,
		state:        state,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		theme:        draw.NewTheme(w, opts.Profile),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		inactivity:   opts.DisconnectInactive,
	}
}

// Run starts the client loop. Blocks until the player leaves or the server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	for c.state.Running {
		frameStart := time.Now()

		c.processInput()

		select {
		case <-c.server.Done():
			c.state.Running = false
		default:
		}

		c.updateScreen()
		c.state.stars.Advance()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input, tracks inactivity and sends it to the server.
func (c *Client) processInput() {
	raw := input.ReadInput(c.inputStream)

	if len(raw.Taps) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.inactivity {
		idle := time.Since(c.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.state.Running = false
		} else if idle > config.InactivityWarnUser {
			c.state.isInactive = true
		}
	}

	if raw.Tapped(keyCtrlC) {
		c.state.Running = false
	}

	c.state.Input = mapInput(raw)
	c.server.SendInput(c.state.Input)
}

// mapInput translates terminal keys to session input.
func mapInput(raw input.Input) game.Input {
	in := game.Input{
		Confirm: raw.Tapped(keyEnter, keyLF),
		Back:    raw.Tapped(keyEscape),
		Quit:    raw.Tapped('q', 'Q'),
		Shop:    raw.Tapped('b', 'B'),
		Share:   raw.Tapped('x', 'X'),
		Choice:  raw.Digit(),
	}
	in.Controls.Up = raw.Up
	in.Controls.Down = raw.Down
	in.Controls.Left = raw.Left
	in.Controls.Right = raw.Right
	in.Controls.Fire = raw.Fire
	return in
}

// updateScreen handles terminal resize. On actual size changes, clears the
// terminal to remove residual pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	field := object.DefaultField()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitField(termWidth, termHeight, field.Width, field.Height)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}
