// Package gfx is the windowed frontend: it runs a game session inside
// ebiten's fixed-rate update loop and draws it with vector shapes.
package gfx

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/loop/server"
	"github.com/tomz197/galactic/internal/object"
)

var (
	colorBackground  = color.RGBA{8, 8, 20, 255}
	colorStar        = color.RGBA{90, 90, 110, 255}
	colorPlayer      = color.RGBA{95, 215, 255, 255}
	colorEnemy       = color.RGBA{255, 95, 95, 255}
	colorUfo         = color.RGBA{215, 135, 255, 255}
	colorLaserPlayer = color.RGBA{255, 255, 95, 255}
	colorLaserEnemy  = color.RGBA{255, 135, 0, 255}
	colorSpark       = color.RGBA{255, 175, 0, 255}
	colorHealth      = color.RGBA{95, 255, 135, 255}
	colorHealthLow   = color.RGBA{255, 95, 95, 255}
)

const lineWidth = 3

// Game adapts a session to ebiten.Game. One Update is one simulation tick.
type Game struct {
	session *game.Session
	stars   *draw.Starfield
	snap    *server.Snapshot
	tick    int
}

// NewGame wraps a session for the window.
func NewGame(s *game.Session) *Game {
	field := object.DefaultField()
	return &Game{
		session: s,
		stars:   draw.NewStarfield(field.Width, field.Height, config.StarCount*2),
		snap:    server.Capture(s, 0),
	}
}

// Update reads the keyboard and steps the session.
func (g *Game) Update() error {
	g.session.Update(readInput())
	g.tick++
	g.snap = server.Capture(g.session, g.tick)
	g.stars.Advance()
	if g.session.Done() {
		g.session.Close()
		return ebiten.Termination
	}
	return nil
}

// readInput maps held and just-pressed keys to session input.
func readInput() game.Input {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}

	in := game.Input{
		Confirm: pressed(ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		Back:    pressed(ebiten.KeyEscape),
		Quit:    pressed(ebiten.KeyQ),
		Shop:    pressed(ebiten.KeyB),
		Share:   pressed(ebiten.KeyX),
	}
	in.Controls.Up = held(ebiten.KeyW, ebiten.KeyArrowUp)
	in.Controls.Down = held(ebiten.KeyS, ebiten.KeyArrowDown)
	in.Controls.Left = held(ebiten.KeyA, ebiten.KeyArrowLeft)
	in.Controls.Right = held(ebiten.KeyD, ebiten.KeyArrowRight)
	in.Controls.Fire = held(ebiten.KeySpace)

	digits := []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
		ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
	for i, k := range digits {
		if inpututil.IsKeyJustPressed(k) {
			in.Choice = i + 1
		}
	}
	return in
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	for _, s := range g.stars.Stars() {
		vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), 2, 2, colorStar, false)
	}

	snap := g.snap
	switch snap.Scene {
	case game.SceneMenu:
		drawLines(screen, 260, 500,
			"GALACTIC SHOOTER",
			"",
			fmt.Sprintf("Best %d   Last %d", snap.Best, snap.LastScore),
			rateLine(snap.Rate),
			"",
			"ENTER  start",
			"B      shop",
			"Q      quit",
			"",
			"WASD / arrows move, SPACE shoot",
		)
	case game.ScenePlaying:
		drawSprites(screen, snap)
		drawHUD(screen, snap)
	case game.SceneGameOver:
		drawLines(screen, 270, 540,
			"GAME OVER",
			"",
			fmt.Sprintf("Score %d", snap.LastScore),
			fmt.Sprintf("Best  %d", snap.Best),
			"",
			"ENTER play again   X share   ESC menu",
			snap.Notice,
		)
	case game.SceneShop:
		lines := []string{"SHOP", ""}
		for i, p := range snap.Products {
			lines = append(lines, fmt.Sprintf("%d  %s", i+1, p.Title()))
		}
		lines = append(lines, "", fmt.Sprintf("Current rate x%d", snap.Rate), "ESC back", snap.Notice)
		drawLines(screen, 280, 520, lines...)
	}

	if snap.Alert != "" {
		vector.DrawFilledRect(screen, 80, 560, 560, 100, color.RGBA{40, 0, 0, 230}, false)
		vector.StrokeRect(screen, 80, 560, 560, 100, 2, colorEnemy, false)
		ebitenutil.DebugPrintAt(screen, snap.Alert, 100, 585)
		ebitenutil.DebugPrintAt(screen, "ENTER dismiss", 100, 625)
	}
}

func rateLine(rate int) string {
	if rate > 1 {
		return fmt.Sprintf("Score x%d next run", rate)
	}
	return ""
}

func drawLines(screen *ebiten.Image, x, y int, lines ...string) {
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, y+i*20)
	}
}

func drawHUD(screen *ebiten.Image, snap *server.Snapshot) {
	score := fmt.Sprintf("SCORE %d", snap.Score)
	if snap.Rate > 1 {
		score += fmt.Sprintf(" x%d", snap.Rate)
	}
	ebitenutil.DebugPrintAt(screen, score, 16, 16)
	ebitenutil.DebugPrintAt(screen, snap.Tier, 16, 36)

	const barW, barH = 200, 14
	x := float32(config.FieldWidth - barW - 16)
	fill := colorHealth
	if snap.Health*4 <= config.PlayerHealth {
		fill = colorHealthLow
	}
	frac := math.Max(0, float64(snap.Health)/config.PlayerHealth)
	vector.DrawFilledRect(screen, x, 16, float32(barW*frac), barH, fill, false)
	vector.StrokeRect(screen, x, 16, barW, barH, 2, colorStar, false)

	if snap.Pending {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", 325, 620)
	}
}

func drawSprites(screen *ebiten.Image, snap *server.Snapshot) {
	for _, s := range snap.Sprites {
		x, y, r := float32(s.X), float32(s.Y), float32(s.Radius)
		switch s.Kind {
		case object.KindPlayer:
			c := colorPlayer
			if s.Opacity < 1 {
				c.A = uint8(255 * s.Opacity)
			}
			polygon(screen, c, x, y-r, x-r*0.8, y+r*0.7, x+r*0.8, y+r*0.7)
		case object.KindEnemyRocket:
			polygon(screen, colorEnemy, x, y+r, x-r*0.45, y, x, y-r, x+r*0.45, y)
		case object.KindEnemyStrike:
			polygon(screen, colorEnemy, x, y+r, x-r, y-r*0.6, x-r*0.3, y-r*0.2, x+r*0.3, y-r*0.2, x+r, y-r*0.6)
		case object.KindEnemyUfo:
			vector.StrokeCircle(screen, x, y, r, lineWidth, colorUfo, true)
			rad := s.Angle * math.Pi / 180
			dx, dy := float32(math.Cos(rad))*r, float32(math.Sin(rad))*r
			vector.StrokeLine(screen, x-dx, y-dy, x+dx, y+dy, lineWidth, colorUfo, true)
		case object.KindLaserPlayer:
			vector.StrokeLine(screen, x, y-r, x, y+r, lineWidth, colorLaserPlayer, false)
		case object.KindLaserEnemy:
			vector.StrokeLine(screen, x, y-r, x, y+r, lineWidth, colorLaserEnemy, false)
		}
	}
	for _, p := range snap.Sparks {
		c := colorSpark
		if p.Faded {
			c.A = 96
		}
		vector.DrawFilledRect(screen, float32(p.X)-2, float32(p.Y)-2, 4, 4, c, false)
	}
}

// polygon strokes a closed outline through the given x, y pairs.
func polygon(screen *ebiten.Image, c color.RGBA, xy ...float32) {
	n := len(xy) / 2
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		vector.StrokeLine(screen, xy[2*i], xy[2*i+1], xy[2*j], xy[2*j+1], lineWidth, c, true)
	}
}

// Layout keeps the logical field size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.FieldWidth, config.FieldHeight
}
