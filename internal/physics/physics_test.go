package physics

import (
	"math"
	"sort"
	"testing"
)

func TestWithinIsStrict(t *testing.T) {
	if Within(0, 0, 600, 0, 600) {
		t.Fatal("point at exactly the radius should not be within")
	}
	if !Within(0, 0, 599.9, 0, 600) {
		t.Fatal("point just inside the radius should be within")
	}
}

func TestTowardPointsAtTarget(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		wantX, wantY   float64
	}{
		{"right", 0, 0, 10, 0, 200, 0},
		{"down", 0, 0, 0, 50, 0, 200},
		{"up-left", 10, 10, 0, 0, -200 / math.Sqrt2, -200 / math.Sqrt2},
		{"same point", 3, 3, 3, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vx, vy := Toward(tt.x1, tt.y1, tt.x2, tt.y2, 200)
			if math.Abs(vx-tt.wantX) > 1e-9 || math.Abs(vy-tt.wantY) > 1e-9 {
				t.Fatalf("Toward = (%f, %f), want (%f, %f)", vx, vy, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	if !CirclesOverlap(0, 0, 5, 9, 0, 5) {
		t.Fatal("circles 9 apart with radii 5+5 should overlap")
	}
	if CirclesOverlap(0, 0, 5, 10, 0, 5) {
		t.Fatal("touching circles should not overlap")
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(5, 5, 0)
	g.Insert(15, 15, 1)
	g.Insert(55, 55, 2)
	g.Insert(-40, 500, 3) // clamped into the bottom-left cell

	var got []int
	g.QueryAround(6, 6, func(i int) bool {
		got = append(got, i)
		return false
	})
	sort.Ints(got)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("QueryAround(6,6) = %v, want [0 1]", got)
	}

	got = got[:0]
	g.QueryAround(0, 99, func(i int) bool {
		got = append(got, i)
		return false
	})
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("QueryAround(0,99) = %v, want [3]", got)
	}

	g.Clear()
	calls := 0
	g.QueryAround(5, 5, func(int) bool { calls++; return false })
	if calls != 0 {
		t.Fatalf("expected empty grid after Clear, got %d items", calls)
	}
}

func TestSpatialGridStopsEarly(t *testing.T) {
	g := NewSpatialGrid(30, 30, 10)
	for i := 0; i < 5; i++ {
		g.Insert(15, 15, i)
	}
	calls := 0
	g.QueryAround(15, 15, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Fatalf("expected iteration to stop after first item, got %d calls", calls)
	}
}
