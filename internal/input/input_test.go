package input

import (
	"testing"
	"time"
)

func TestParseArrowsAndTaps(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	in := s.parse([]byte("\x1b[A\x1b[Dx\r2"), now)
	if !in.Up || !in.Left || in.Right || in.Down {
		t.Fatalf("held keys %+v", in)
	}
	if !in.Tapped('x') || !in.Tapped('\n', '\r') || in.Tapped('\x1b') {
		t.Fatalf("taps = %q", in.Taps)
	}
	if in.Digit() != 2 {
		t.Fatalf("digit = %d", in.Digit())
	}
}

func TestBareEscapeIsATap(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte{'\x1b'}, time.Now())
	if !in.Tapped('\x1b') {
		t.Fatalf("taps = %q", in.Taps)
	}
}

func TestHeldKeysExpire(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte(" d"), now)

	in := s.parse(nil, now.Add(keyHoldDuration/2))
	if !in.Fire || !in.Right {
		t.Fatalf("keys released too early: %+v", in)
	}
	if len(in.Taps) != 0 {
		t.Fatalf("taps carried over: %q", in.Taps)
	}
	in = s.parse(nil, now.Add(keyHoldDuration))
	if in.Fire || in.Right {
		t.Fatalf("keys still held: %+v", in)
	}
}

func TestReadInputDrainsStream(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}
	for _, b := range []byte("q ") {
		s.ch <- b
	}
	in := ReadInput(s)
	if !in.Tapped('q') || !in.Fire {
		t.Fatalf("input %+v", in)
	}
}
