// Package score tracks the credited score of a run and the value shown on the HUD.
package score

import "github.com/tomz197/galactic/internal/loop/config"

// Board holds the score state of one run. The zero value is not usable; use NewBoard.
type Board struct {
	total     int
	displayed int
	rate      int
}

// NewBoard creates an empty board crediting at the given multiplier.
// Rates below 1 fall back to the default.
func NewBoard(rate int) *Board {
	b := &Board{}
	b.SetRate(rate)
	return b
}

// Credit adds points multiplied by the current rate and returns the amount credited.
func (b *Board) Credit(points int) int {
	n := points * b.rate
	b.total += n
	return n
}

// Total is the cumulative credited score. Difficulty and persistence read this.
func (b *Board) Total() int { return b.total }

// Displayed is the HUD counter, which lags behind Total.
func (b *Board) Displayed() int { return b.displayed }

// Rate returns the active multiplier.
func (b *Board) Rate() int { return b.rate }

// SetRate changes the multiplier for future credits.
func (b *Board) SetRate(rate int) {
	if rate < 1 {
		rate = config.DefaultScoreRate
	}
	b.rate = rate
}

// Tick moves the displayed counter one point toward the total.
func (b *Board) Tick() {
	if b.displayed < b.total {
		b.displayed++
	}
}

// Settle snaps the displayed counter to the total.
func (b *Board) Settle() { b.displayed = b.total }

// Reset clears the score, keeping the rate.
func (b *Board) Reset() {
	b.total = 0
	b.displayed = 0
}
