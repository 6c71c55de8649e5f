package server

import (
	"context"
	"testing"
	"time"

	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/player"
	"github.com/tomz197/galactic/internal/world"
)

func newTestHost() *Host {
	opts := world.DesktopOptions(object.NewRand(1))
	for i := range opts.Tiers {
		opts.Tiers[i].Delay = time.Hour
	}
	return NewHost(game.New(game.Deps{World: opts}))
}

func TestInitialSnapshotIsMenu(t *testing.T) {
	h := newTestHost()
	snap := h.Snapshot()
	if snap == nil || snap.Scene != game.SceneMenu {
		t.Fatalf("initial snapshot = %+v", snap)
	}
	if len(snap.Products) != 4 {
		t.Fatalf("products = %d, want 4", len(snap.Products))
	}
}

func TestCollectInputsMergesPresses(t *testing.T) {
	h := newTestHost()
	h.SendInput(game.Input{Confirm: true, Choice: 2})
	h.SendInput(game.Input{Controls: player.Controls{Left: true}})
	h.SendInput(game.Input{Controls: player.Controls{Right: true}, Share: true})

	in := h.collectInputs()
	if !in.Confirm || !in.Share || in.Choice != 2 {
		t.Fatalf("presses lost in merge: %+v", in)
	}
	if in.Controls.Left || !in.Controls.Right {
		t.Fatalf("controls should come from the latest input: %+v", in.Controls)
	}
	if again := h.collectInputs(); again != (game.Input{}) {
		t.Fatalf("queue not drained: %+v", again)
	}
}

func TestStepPublishesSnapshot(t *testing.T) {
	h := newTestHost()
	h.SendInput(game.Input{Confirm: true})
	if h.Step() {
		t.Fatal("session should not be done")
	}
	snap := h.Snapshot()
	if snap.Scene != game.ScenePlaying || snap.Tick != 1 {
		t.Fatalf("scene %s tick %d", snap.Scene, snap.Tick)
	}
	if snap.Health != 100 || snap.Tier != "easy" || snap.Rate != 1 {
		t.Fatalf("unexpected hud %+v", snap)
	}
	var ship *Sprite
	for i := range snap.Sprites {
		if snap.Sprites[i].Kind == object.KindPlayer {
			ship = &snap.Sprites[i]
		}
	}
	if ship == nil || ship.Opacity != 1 {
		t.Fatalf("player sprite missing or dimmed: %+v", snap.Sprites)
	}

	prev := snap
	h.Step()
	if h.Snapshot() == prev {
		t.Fatal("each tick should publish a fresh snapshot")
	}
}

func TestRunStopsWhenPlayerQuits(t *testing.T) {
	h := newTestHost()
	h.SendInput(game.Input{Quit: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go h.Run(ctx)

	select {
	case <-h.Done():
	case <-ctx.Done():
		t.Fatal("host did not stop after quit")
	}
	if !h.Snapshot().Done {
		t.Fatal("final snapshot should be marked done")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := newTestHost()
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("host did not stop after cancel")
	}
}

func TestCaptureDimsPlayerInGrace(t *testing.T) {
	s := game.New(game.Deps{World: world.DesktopOptions(object.NewRand(1))})
	s.Update(game.Input{Confirm: true})
	s.World().Player.TakeDamage(config.PlayerDamagePerHit)

	snap := Capture(s, 1)
	for _, sp := range snap.Sprites {
		if sp.Kind == object.KindPlayer {
			if sp.Opacity != config.GraceOpacity {
				t.Fatalf("player opacity = %f, want %f", sp.Opacity, config.GraceOpacity)
			}
			return
		}
	}
	t.Fatal("player sprite missing")
}
