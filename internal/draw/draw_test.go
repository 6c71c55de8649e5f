package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestDrawLineAndAt(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10) // 10x10 sub-pixels, 1:1 scale
	c.SetInk(InkEnemy)
	c.DrawLine(Point{X: 0, Y: 0}, Point{X: 9, Y: 9})
	for i := 0; i < 10; i++ {
		if c.At(i, i) != InkEnemy {
			t.Fatalf("pixel (%d,%d) not drawn", i, i)
		}
	}
	if c.At(9, 0) != InkNone {
		t.Fatal("unexpected pixel off the line")
	}
	if c.At(-1, 0) != InkNone || c.At(0, 100) != InkNone {
		t.Fatal("out of range reads should be empty")
	}
	c.Clear()
	if c.At(3, 3) != InkNone {
		t.Fatal("Clear left pixels behind")
	}
}

func TestFilledPolygon(t *testing.T) {
	c := NewScaledCanvas(20, 10, 20, 20)
	c.SetInk(InkUfo)
	c.DrawPolygon(c.RegularPolygon(10, 10, 6, 8, 0), true)
	if c.At(10, 10) != InkUfo {
		t.Fatal("polygon center not filled")
	}
	if c.At(0, 0) != InkNone {
		t.Fatal("polygon leaked to the corner")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.SetPalette(termenv.Ascii)
	c.SetInk(InkPlayer)
	c.SetFloat(0, 0) // top only
	c.SetFloat(1, 1) // bottom only
	c.SetFloat(2, 0)
	c.SetFloat(2, 1) // both

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	want := string(BlockUpperHalf) + string(BlockLowerHalf) + string(BlockFull)
	if !strings.Contains(out, want) {
		t.Fatalf("render = %q, want it to contain %q", out, want)
	}
	if strings.Contains(out, "\x1b[3") {
		t.Fatalf("ascii profile should not emit colors: %q", out)
	}

	buf.Reset()
	c.SetPalette(termenv.ANSI256)
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\x1b[38;5;") || !strings.Contains(buf.String(), sgrReset) {
		t.Fatalf("ansi256 render missing colors: %q", buf.String())
	}
}

func TestFitField(t *testing.T) {
	tests := []struct {
		tw, th               int
		w, h, offCol, offRow int
	}{
		{200, 40, 45, 40, 77, 0},
		{30, 60, 30, 26, 0, 17},
		{0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		w, h, oc, or := FitField(tt.tw, tt.th, 720, 1280)
		if w != tt.w || h != tt.h || oc != tt.offCol || or != tt.offRow {
			t.Errorf("FitField(%d,%d) = %d,%d,%d,%d want %d,%d,%d,%d",
				tt.tw, tt.th, w, h, oc, or, tt.w, tt.h, tt.offCol, tt.offRow)
		}
	}
}

func TestProfileFor(t *testing.T) {
	var buf bytes.Buffer
	if p := ProfileFor(&buf, []string{"TERM=xterm-256color"}); p != termenv.ANSI256 {
		t.Errorf("256color term = %v", p)
	}
	if p := ProfileFor(&buf, []string{"TERM=xterm", "COLORTERM=truecolor"}); p != termenv.TrueColor {
		t.Errorf("truecolor term = %v", p)
	}
	if p := ProfileFor(&buf, []string{"TERM=dumb"}); p != termenv.Ascii {
		t.Errorf("dumb term = %v", p)
	}
}

func TestChunkWriterBlocks(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteBlock(1, 1, "ab\ncd")
	cw.WriteCentered(10, 5, "xy")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"\x1b[4;3Hab", "\x1b[5;3Hcd", "\x1b[8;7Hxy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestHealthBar(t *testing.T) {
	theme := NewTheme(&bytes.Buffer{}, termenv.Ascii)
	if got := theme.HealthBar(50, 100, 10); strings.Count(got, "█") != 5 || strings.Count(got, "░") != 5 {
		t.Errorf("half bar = %q", got)
	}
	if got := theme.HealthBar(-50, 100, 4); strings.Count(got, "░") != 4 {
		t.Errorf("negative health bar = %q", got)
	}
}

func TestStarfieldWraps(t *testing.T) {
	sf := NewStarfield(100, 100, 20)
	for i := 0; i < 1000; i++ {
		sf.Advance()
	}
	for _, s := range sf.Stars() {
		if s.Y < 0 || s.Y >= 100 || s.X < 0 || s.X > 100 {
			t.Fatalf("star escaped the field: %+v", s)
		}
	}
}
