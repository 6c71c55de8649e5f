// Package input turns raw terminal bytes into held keys and key taps.
package input

import (
	"bufio"
	"slices"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so a held key is a stream of recent presses.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Fire  bool

	// Taps are the single-byte keys pressed since the last frame, in order.
	// Arrow key escape sequences are not included.
	Taps []byte
}

// Tapped reports whether any of the keys was pressed this frame.
func (in Input) Tapped(keys ...byte) bool {
	for _, k := range keys {
		if slices.Contains(in.Taps, k) {
			return true
		}
	}
	return false
}

// Digit returns the last digit tapped this frame, or 0.
func (in Input) Digit() int {
	d := 0
	for _, b := range in.Taps {
		if b >= '1' && b <= '9' {
			d = int(b - '0')
		}
	}
	return d
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	return s.parse(buf, time.Now())
}

// parse updates key state from buf and builds the frame's input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var taps []byte
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			}
			i += 2
			continue
		}

		applyByteToState(&s.state, b, now)
		taps = append(taps, b)
	}

	return Input{
		Left:  now.Sub(s.state.left) < keyHoldDuration,
		Right: now.Sub(s.state.right) < keyHoldDuration,
		Up:    now.Sub(s.state.up) < keyHoldDuration,
		Down:  now.Sub(s.state.down) < keyHoldDuration,
		Fire:  now.Sub(s.state.fire) < keyHoldDuration,
		Taps:  taps,
	}
}

// applyByteToState updates the held key timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.fire = now
	}
}
