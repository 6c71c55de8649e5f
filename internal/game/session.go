// Package game drives a single player's session: scenes, runs, persistence,
// sound cues and platform services around the world simulation.
package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/galactic/internal/audio"
	"github.com/tomz197/galactic/internal/collision"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/object"
	"github.com/tomz197/galactic/internal/platform"
	"github.com/tomz197/galactic/internal/player"
	"github.com/tomz197/galactic/internal/store"
	"github.com/tomz197/galactic/internal/world"
)

// Scene is the screen the session is on.
type Scene int

const (
	SceneMenu Scene = iota
	ScenePlaying
	SceneGameOver
	SceneShop
)

func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "menu"
	case ScenePlaying:
		return "playing"
	case SceneGameOver:
		return "game_over"
	case SceneShop:
		return "shop"
	default:
		return "unknown"
	}
}

// Input is everything the frontends report for one tick.
// Controls are held keys; the rest are presses.
type Input struct {
	Controls player.Controls
	Confirm  bool
	Back     bool
	Quit     bool
	Shop     bool
	Share    bool
	Choice   int // 1-based shop item, 0 for none
}

// Deps are the collaborators of a session. Nil fields get silent or
// in-memory defaults.
type Deps struct {
	Store    store.Store
	Sounds   audio.Sounds
	Services platform.Services
	Logger   *log.Logger
	World    world.Options
}

// Session is one player's game. It is not safe for concurrent use.
type Session struct {
	deps   Deps
	log    *log.Logger
	scene  Scene
	world  *world.World
	user   string
	alert  string
	notice string
	quit   bool

	overIn    int // ticks left until the game over screen, 0 when not pending
	lastScore int
	best      int
	runs      int
}

// New creates a session on the menu and signs the player in.
func New(deps Deps) *Session {
	if deps.Store == nil {
		deps.Store = store.NewMemory()
	}
	if deps.Sounds == nil {
		deps.Sounds = audio.Silent{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Services.Ads == nil {
		deps.Services.Ads = platform.NoAds{}
	}
	if deps.Services.Purchases == nil {
		deps.Services.Purchases = platform.DefaultCatalog()
	}
	if deps.Services.Sharer == nil {
		deps.Services.Sharer = platform.NewClipboardSharer(io.Discard, false)
	}
	if deps.World.Field == (object.Field{}) {
		deps.World = world.DesktopOptions(nil)
	}
	s := &Session{deps: deps, log: deps.Logger, scene: SceneMenu}

	if deps.Services.Auth != nil {
		deps.Services.Auth.SignIn(
			func(name string) { s.user = name },
			func(err error) { s.log.Warn("sign in failed", "err", err) },
		)
	}
	if best, err := store.GetOr(deps.Store, store.KeyBest, 0); err != nil {
		s.log.Warn("failed to load best score", "err", err)
	} else {
		s.best = best
	}
	if last, err := store.GetOr(deps.Store, store.KeyScore, 0); err == nil {
		s.lastScore = last
	}
	return s
}

func (s *Session) Scene() Scene          { return s.scene }
func (s *Session) World() *world.World   { return s.world }
func (s *Session) User() string          { return s.user }
func (s *Session) Alert() string         { return s.alert }
func (s *Session) Notice() string        { return s.notice }
func (s *Session) LastScore() int        { return s.lastScore }
func (s *Session) Best() int             { return s.best }
func (s *Session) Runs() int             { return s.runs }
func (s *Session) Done() bool            { return s.quit }
func (s *Session) GameOverPending() bool { return s.overIn > 0 }

// Products lists the shop items in menu order.
func (s *Session) Products() []platform.Product {
	return s.deps.Services.Purchases.Products()
}

// ScoreRate returns the persisted multiplier the next run will credit with.
func (s *Session) ScoreRate() int {
	rate, err := store.GetOr(s.deps.Store, store.KeyScoreRate, config.DefaultScoreRate)
	if err != nil || rate < 1 {
		return config.DefaultScoreRate
	}
	return rate
}

// Update advances the session by one tick.
func (s *Session) Update(in Input) {
	if s.alert != "" {
		if in.Confirm || in.Back {
			s.alert = ""
		}
		return
	}
	switch s.scene {
	case SceneMenu:
		s.updateMenu(in)
	case ScenePlaying:
		s.updatePlaying(in)
	case SceneGameOver:
		s.updateGameOver(in)
	case SceneShop:
		s.updateShop(in)
	}
}

// Close releases the session's resources.
func (s *Session) Close() {
	if s.world != nil {
		s.world.Release()
		s.world = nil
	}
	s.deps.Sounds.StopBackground()
}

func (s *Session) updateMenu(in Input) {
	switch {
	case in.Quit:
		s.quit = true
	case in.Confirm:
		s.startRun()
	case in.Shop:
		s.notice = ""
		s.scene = SceneShop
	}
}

func (s *Session) updateShop(in Input) {
	switch {
	case in.Back || in.Quit:
		s.scene = SceneMenu
	case in.Choice > 0:
		products := s.Products()
		if in.Choice > len(products) {
			return
		}
		s.buy(products[in.Choice-1].ID)
	}
}

func (s *Session) buy(id string) {
	s.deps.Services.Purchases.Buy(id,
		func(p platform.Product) {
			if err := s.deps.Store.Set(store.KeyScoreRate, p.Multiplier); err != nil {
				s.raise(fmt.Errorf("save purchase: %w", err))
				return
			}
			s.notice = p.Title() + " active for the next run"
			s.log.Info("purchase", "user", s.user, "product", p.ID)
		},
		func(err error) {
			s.raise(fmt.Errorf("purchase failed: %w", err))
		},
	)
}

func (s *Session) startRun() {
	if s.world != nil {
		s.world.Release()
	}
	opts := s.deps.World
	opts.ScoreRate = s.ScoreRate()
	s.world = world.New(opts)
	s.overIn = 0
	s.runs++
	if err := s.deps.Store.Set(store.KeyScore, 0); err != nil {
		s.log.Warn("failed to reset score", "err", err)
	}
	s.deps.Sounds.PlayBackground()
	s.scene = ScenePlaying
	s.log.Debug("run started", "user", s.user, "rate", opts.ScoreRate)
}

func (s *Session) updatePlaying(in Input) {
	if in.Quit && s.overIn == 0 {
		s.deps.Sounds.StopBackground()
		s.scene = SceneMenu
		return
	}
	f := s.world.Step(in.Controls)
	if f.Fired {
		s.deps.Sounds.PlayLaser()
	}
	for _, ev := range f.Events {
		switch ev.Kind {
		case collision.EnemyShot:
			s.deps.Sounds.PlayExplosion()
		case collision.PlayerHit:
			if ev.Source.Kind.IsEnemy() {
				s.deps.Sounds.PlayExplosion()
			}
		case collision.PlayerDied:
			s.gameOver()
		}
	}
	if s.overIn > 0 {
		s.overIn--
		if s.overIn == 0 {
			s.world.Board.Settle()
			s.scene = SceneGameOver
		}
	}
}

// gameOver runs once per run, on the hit that killed the player.
func (s *Session) gameOver() {
	s.deps.Sounds.StopBackground()
	s.deps.Sounds.PlayDie()
	s.deps.Services.Ads.ShowInterstitial(nil, func(err error) {
		s.log.Warn("interstitial failed", "err", err)
	})

	total := s.world.Board.Total()
	s.lastScore = total
	if total > s.best {
		s.best = total
	}
	for _, kv := range []struct {
		key   string
		value int
	}{
		{store.KeyScoreRate, config.DefaultScoreRate},
		{store.KeyScore, total},
		{store.KeyBest, s.best},
	} {
		if err := s.deps.Store.Set(kv.key, kv.value); err != nil {
			s.raise(fmt.Errorf("save %s: %w", kv.key, err))
		}
	}
	s.overIn = config.Ticks(config.GameOverDelay)
	s.log.Info("game over", "user", s.user, "score", total, "best", s.best)
}

func (s *Session) updateGameOver(in Input) {
	switch {
	case in.Confirm:
		s.startRun()
	case in.Share:
		s.deps.Services.Sharer.Share(platform.ShareText(s.lastScore),
			func() { s.notice = "Score copied to clipboard" },
			func(err error) { s.raise(fmt.Errorf("share failed: %w", err)) },
		)
	case in.Back || in.Quit:
		s.notice = ""
		s.scene = SceneMenu
	}
}

// raise shows a blocking alert until the player dismisses it.
func (s *Session) raise(err error) {
	s.log.Error("alert", "user", s.user, "err", err)
	s.alert = err.Error()
}
