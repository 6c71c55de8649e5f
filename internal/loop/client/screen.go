package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/galactic/internal/draw"
	"github.com/tomz197/galactic/internal/game"
	"github.com/tomz197/galactic/internal/loop/config"
	"github.com/tomz197/galactic/internal/loop/server"
	"github.com/tomz197/galactic/internal/object"
)

var titleArt = []string{
	`  ___   _   _      _   ___ _____ ___ ___  `,
	` / __| /_\ | |    /_\ / __|_   _|_ _/ __| `,
	`| (_ |/ _ \| |__ / _ \ (__  | |  | | (__  `,
	` \___/_/ \_\____/_/ \_\___| |_| |___\___| `,
}

var gameOverArt = []string{
	`  ___   _   __  __ ___    _____   _____ ___  `,
	` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	snap := c.server.Snapshot()

	c.canvas.Clear()
	c.state.stars.Draw(c.canvas)
	if snap.Scene == game.ScenePlaying {
		c.drawSprites(snap)
	}
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if snap.Scene == game.ScenePlaying {
		c.drawSparks(snap)
	}
	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// drawSprites draws every entity as an outline or filled shape in logical space.
func (c *Client) drawSprites(snap *server.Snapshot) {
	cv := c.canvas
	for _, s := range snap.Sprites {
		r := s.Radius
		switch s.Kind {
		case object.KindPlayer:
			cv.SetInk(draw.InkPlayer)
			if s.Opacity < 1 {
				cv.SetInk(draw.InkDim)
			}
			pts := cv.BorrowPoints(3)
			pts[0] = draw.Point{X: s.X, Y: s.Y - r}
			pts[1] = draw.Point{X: s.X - r*0.8, Y: s.Y + r*0.7}
			pts[2] = draw.Point{X: s.X + r*0.8, Y: s.Y + r*0.7}
			cv.DrawPolygon(pts, true)
		case object.KindEnemyRocket:
			cv.SetInk(draw.InkEnemy)
			pts := cv.BorrowPoints(4)
			pts[0] = draw.Point{X: s.X, Y: s.Y + r}
			pts[1] = draw.Point{X: s.X - r*0.45, Y: s.Y}
			pts[2] = draw.Point{X: s.X, Y: s.Y - r}
			pts[3] = draw.Point{X: s.X + r*0.45, Y: s.Y}
			cv.DrawPolygon(pts, true)
		case object.KindEnemyStrike:
			cv.SetInk(draw.InkEnemy)
			pts := cv.BorrowPoints(5)
			pts[0] = draw.Point{X: s.X, Y: s.Y + r}
			pts[1] = draw.Point{X: s.X - r, Y: s.Y - r*0.6}
			pts[2] = draw.Point{X: s.X - r*0.3, Y: s.Y - r*0.2}
			pts[3] = draw.Point{X: s.X + r*0.3, Y: s.Y - r*0.2}
			pts[4] = draw.Point{X: s.X + r, Y: s.Y - r*0.6}
			cv.DrawPolygon(pts, false)
		case object.KindEnemyUfo:
			cv.SetInk(draw.InkUfo)
			cv.DrawPolygon(cv.RegularPolygon(s.X, s.Y, r, 8, s.Angle), false)
		case object.KindLaserPlayer:
			cv.SetInk(draw.InkLaserPlayer)
			cv.DrawLine(draw.Point{X: s.X, Y: s.Y - r}, draw.Point{X: s.X, Y: s.Y + r})
		case object.KindLaserEnemy:
			cv.SetInk(draw.InkLaserEnemy)
			cv.DrawLine(draw.Point{X: s.X, Y: s.Y - r}, draw.Point{X: s.X, Y: s.Y + r})
		}
	}
}

// drawSparks writes explosion particles as text over the rendered canvas.
func (c *Client) drawSparks(snap *server.Snapshot) {
	w, h := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()
	for _, p := range snap.Sparks {
		col, row := c.canvas.LogicalToTerminal(p.X, p.Y)
		if col < 1 || col > w || row < 1 || row > h {
			continue
		}
		style := c.theme.Score
		if p.Faded {
			style = c.theme.Dim
		}
		c.chunkWriter.WriteAt(col, row, style.Render(string(p.Symbol)))
	}
}

// drawUI draws the scene's text on top of the canvas.
func (c *Client) drawUI(snap *server.Snapshot) {
	if c.state.isInactive {
		c.drawInactivityScreen()
		return
	}

	switch snap.Scene {
	case game.SceneMenu:
		c.drawMenuScreen(snap)
	case game.ScenePlaying:
		c.drawPlayingHUD(snap)
	case game.SceneGameOver:
		c.drawGameOverScreen(snap)
	case game.SceneShop:
		c.drawShopScreen(snap)
	}

	if snap.Alert != "" {
		box := c.theme.Alert.Render(snap.Alert + "\n\n" + c.theme.Key.Render("Enter") + " dismiss")
		c.chunkWriter.WriteCentered(c.canvas.TerminalWidth(), c.canvas.TerminalHeight()/2-2, box)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	width, row := c.canvas.TerminalWidth(), c.canvas.TerminalHeight()/2-2
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.chunkWriter.WriteCentered(width, row, c.theme.Title.Render("INACTIVITY WARNING"))
	c.chunkWriter.WriteCentered(width, row+2, c.theme.Text.Render(fmt.Sprintf("Disconnecting in %d seconds", left)))
	c.chunkWriter.WriteCentered(width, row+4, c.theme.Dim.Render("Press any key to continue"))
}

// drawMenuScreen draws the title screen.
func (c *Client) drawMenuScreen(snap *server.Snapshot) {
	cw, t := c.chunkWriter, c.theme
	width := c.canvas.TerminalWidth()
	row := max(c.canvas.TerminalHeight()/2-9, 1)

	cw.WriteCentered(width, row, t.Title.Render(strings.Join(titleArt, "\n")))
	row += len(titleArt) + 1
	cw.WriteCentered(width, row, t.Dim.Render("~ shooter ~"))
	row += 2

	if snap.User != "" {
		cw.WriteCentered(width, row, t.Text.Render("Pilot "+snap.User))
		row++
	}
	cw.WriteCentered(width, row, t.Text.Render(fmt.Sprintf("Best %d   Last %d", snap.Best, snap.LastScore)))
	row++
	if snap.Rate > 1 {
		cw.WriteCentered(width, row, t.Score.Render(fmt.Sprintf("Score x%d next run", snap.Rate)))
	}
	row += 2

	controls := lipgloss.JoinVertical(lipgloss.Left,
		t.Key.Render("WASD / arrows")+t.Dim.Render("  move"),
		t.Key.Render("SPACE        ")+t.Dim.Render("  shoot"),
		t.Key.Render("b            ")+t.Dim.Render("  shop"),
		t.Key.Render("q            ")+t.Dim.Render("  quit"),
	)
	cw.WriteCentered(width, row, controls)
	row += 5

	if time.Now().UnixMilli()/600%2 == 0 {
		cw.WriteCentered(width, row, t.Key.Render(">>  Press ENTER to start  <<"))
	}
}

// drawPlayingHUD draws score and health over the play field.
func (c *Client) drawPlayingHUD(snap *server.Snapshot) {
	cw, t := c.chunkWriter, c.theme
	width := c.canvas.TerminalWidth()

	score := t.Score.Render(fmt.Sprintf("%-8d", snap.Score))
	if snap.Rate > 1 {
		score += t.Dim.Render(fmt.Sprintf(" x%d", snap.Rate))
	}
	cw.WriteAt(2, 1, score)

	barWidth := min(20, max(width/4, 5))
	cw.WriteAt(width-barWidth, 1, t.HealthBar(snap.Health, config.PlayerHealth, barWidth))
	cw.WriteAt(2, 2, t.Dim.Render(snap.Tier))

	if snap.Pending {
		cw.WriteCentered(width, c.canvas.TerminalHeight()/2, t.HealthLow.Render("GAME OVER"))
	}
}

// drawGameOverScreen draws the result of the finished run.
func (c *Client) drawGameOverScreen(snap *server.Snapshot) {
	cw, t := c.chunkWriter, c.theme
	width := c.canvas.TerminalWidth()
	row := max(c.canvas.TerminalHeight()/2-7, 1)

	cw.WriteCentered(width, row, t.HealthLow.Render(strings.Join(gameOverArt, "\n")))
	row += len(gameOverArt) + 1
	cw.WriteCentered(width, row, t.Score.Render(fmt.Sprintf("Score %d", snap.LastScore)))
	row++
	cw.WriteCentered(width, row, t.Text.Render(fmt.Sprintf("Best %d", snap.Best)))
	row += 2
	cw.WriteCentered(width, row,
		t.Key.Render("Enter")+t.Dim.Render(" play again   ")+
			t.Key.Render("x")+t.Dim.Render(" share   ")+
			t.Key.Render("Esc")+t.Dim.Render(" menu"))
	if snap.Notice != "" {
		cw.WriteCentered(width, row+2, t.Notice.Render(snap.Notice))
	}
}

// drawShopScreen lists the score multipliers for sale.
func (c *Client) drawShopScreen(snap *server.Snapshot) {
	cw, t := c.chunkWriter, c.theme
	width := c.canvas.TerminalWidth()
	row := max(c.canvas.TerminalHeight()/2-6, 1)

	cw.WriteCentered(width, row, t.Title.Render("SHOP"))
	row += 2
	lines := make([]string, 0, len(snap.Products))
	for i, p := range snap.Products {
		lines = append(lines, t.Key.Render(fmt.Sprintf("%d", i+1))+"  "+t.Text.Render(p.Title()))
	}
	cw.WriteCentered(width, row, lipgloss.JoinVertical(lipgloss.Left, lines...))
	row += len(lines) + 1
	cw.WriteCentered(width, row, t.Dim.Render(fmt.Sprintf("Current rate x%d", snap.Rate)))
	row += 2
	cw.WriteCentered(width, row, t.Key.Render("Esc")+t.Dim.Render(" back"))
	if snap.Notice != "" {
		cw.WriteCentered(width, row+2, t.Notice.Render(snap.Notice))
	}
}
