// Package server runs one game session on its own goroutine at a fixed tick
// rate and publishes immutable snapshots for the renderers.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop/config"
)

// GameServer is what a client needs from the simulation.
type GameServer interface {
	SendInput(in game.Input)
	Snapshot() *Snapshot
	Done() <-chan struct{}
}

// Host owns a game.Session. Only the Run goroutine touches the session;
// everything else goes through the input channel and the snapshot pointer.
type Host struct {
	session  *game.Session
	inputCh  chan game.Input
	snapshot atomic.Pointer[Snapshot]
	done     chan struct{}
	once     sync.Once
	tick     int
}

// Compile-time check that Host implements GameServer.
var _ GameServer = (*Host)(nil)

// NewHost wraps a session. The first snapshot is available immediately.
func NewHost(s *game.Session) *Host {
	h := &Host{
		session: s,
		inputCh: make(chan game.Input, 256),
		done:    make(chan struct{}),
	}
	h.snapshot.Store(Capture(s, 0))
	return h
}

// Run steps the session every tick until the context is cancelled or the
// player quits. The session is closed on return.
func (h *Host) Run(ctx context.Context) {
	defer h.finish()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		if h.Step() {
			return
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TickTime {
			time.Sleep(config.TickTime - elapsed)
		}
	}
}

// Step runs exactly one tick with the inputs queued so far and publishes a
// snapshot. Returns true once the session is done.
func (h *Host) Step() bool {
	in := h.collectInputs()
	h.session.Update(in)
	h.tick++
	snap := Capture(h.session, h.tick)
	h.snapshot.Store(snap)
	return snap.Done
}

// SendInput queues input for the next tick. Drops it if the queue is full.
func (h *Host) SendInput(in game.Input) {
	select {
	case h.inputCh <- in:
	default:
		// Input channel full, drop input
	}
}

// Snapshot returns the latest published snapshot.
func (h *Host) Snapshot() *Snapshot {
	return h.snapshot.Load()
}

// Done is closed when Run returns.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// collectInputs folds everything received since the last tick into one
// input: held controls come from the latest message, presses are kept if any
// message carried them.
func (h *Host) collectInputs() game.Input {
	var merged game.Input
	for {
		select {
		case in := <-h.inputCh:
			merged.Controls = in.Controls
			merged.Confirm = merged.Confirm || in.Confirm
			merged.Back = merged.Back || in.Back
			merged.Quit = merged.Quit || in.Quit
			merged.Shop = merged.Shop || in.Shop
			merged.Share = merged.Share || in.Share
			if in.Choice != 0 {
				merged.Choice = in.Choice
			}
		default:
			return merged
		}
	}
}

func (h *Host) finish() {
	h.once.Do(func() {
		h.session.Close()
		snap := *h.snapshot.Load()
		snap.Done = true
		h.snapshot.Store(&snap)
		close(h.done)
	})
}
