package platform

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrNothingToShare is returned for an empty share text.
var ErrNothingToShare = errors.New("nothing to share")

// ClipboardSharer copies text to the terminal's clipboard with an OSC 52
// escape sequence. Works over SSH since the sequence travels with the output.
type ClipboardSharer struct {
	mu   sync.Mutex
	w    io.Writer
	tmux bool
}

// NewClipboardSharer writes sequences to w. Set tmux when running inside
// tmux so the sequence is passed through.
func NewClipboardSharer(w io.Writer, tmux bool) *ClipboardSharer {
	return &ClipboardSharer{w: w, tmux: tmux}
}

func (s *ClipboardSharer) Share(text string, onSuccess func(), onFailure func(error)) {
	if text == "" {
		fail(onFailure, ErrNothingToShare)
		return
	}
	seq := osc52.New(text)
	if s.tmux {
		seq = seq.Tmux()
	}
	s.mu.Lock()
	_, err := seq.WriteTo(s.w)
	s.mu.Unlock()
	if err != nil {
		fail(onFailure, fmt.Errorf("copy to clipboard: %w", err))
		return
	}
	call(onSuccess)
}

// ShareText is the message shared for a finished run.
func ShareText(score int) string {
	return fmt.Sprintf("I scored %d points in Galactic Shooter!", score)
}
