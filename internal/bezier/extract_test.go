package bezier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func checkShape(t *testing.T, c Contour) {
	t.Helper()
	if len(c.V) != len(c.I) || len(c.V) != len(c.O) {
		t.Fatalf("array lengths differ: v=%d i=%d o=%d", len(c.V), len(c.I), len(c.O))
	}
	if len(c.V) == 0 {
		t.Fatal("empty contour")
	}
}

func TestExtractLines(t *testing.T) {
	cmds := []Command{
		Move(Pt(0, 0)),
		Line(Pt(10, 0)),
		Line(Pt(10, 10)),
		Line(Pt(0, 0)),
		ClosePath(),
	}
	got := Extract(cmds)
	want := []Contour{{
		Closed: true,
		V:      []Point{{0, 0}, {10, 0}, {10, 10}},
		I:      []Point{{0, 0}, {0, 0}, {0, 0}},
		O:      []Point{{0, 0}, {0, 0}, {0, 0}},
	}}
	diff(t, want, got)
}

func TestExtractCubicHandles(t *testing.T) {
	cmds := []Command{
		Move(Pt(0, 0)),
		Cubic(Pt(1, 2), Pt(3, 4), Pt(5, 0)),
		Line(Pt(5, -5)),
		ClosePath(),
	}
	got := Extract(cmds)
	if len(got) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(got))
	}
	c := got[0]
	checkShape(t, c)
	// outgoing control point backfilled on the previous vertex
	diff(t, Point{1, 2}, c.O[0])
	// incoming control point stored relative to the new vertex
	diff(t, Point{-2, 4}, c.I[1])
	diff(t, Point{0, 0}, c.O[1])
}

func TestExtractQuadRaise(t *testing.T) {
	cmds := []Command{
		Move(Pt(0, 0)),
		Quad(Pt(3, 3), Pt(6, 0)),
		Line(Pt(3, -3)),
	}
	got := Extract(cmds)
	if len(got) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(got))
	}
	c := got[0]
	checkShape(t, c)
	diff(t, Point{2, 2}, c.O[0])
	diff(t, Point{-2, 2}, c.I[1])
	if !c.Closed {
		t.Error("trailing open contour should be emitted closed")
	}
}

func TestExtractMultipleContours(t *testing.T) {
	cmds := []Command{
		Move(Pt(0, 0)), Line(Pt(4, 0)), Line(Pt(4, 4)), ClosePath(),
		Move(Pt(1, 1)), Line(Pt(2, 1)), Line(Pt(2, 2)),
		Move(Pt(9, 9)),
		Move(Pt(5, 5)), Line(Pt(6, 5)), Line(Pt(6, 6)),
	}
	got := Extract(cmds)
	if len(got) != 3 {
		t.Fatalf("expected 3 contours (single-point contour dropped), got %d", len(got))
	}
	for _, c := range got {
		checkShape(t, c)
		if !c.Closed {
			t.Error("contour not closed")
		}
	}
}

func TestExtractRounds(t *testing.T) {
	cmds := []Command{
		Move(Pt(0.123456, 0)),
		Line(Pt(10.005001, 0)),
		Line(Pt(3.333333, 7.777777)),
	}
	got := Extract(cmds)
	diff(t, []Point{{0.12, 0}, {10.01, 0}, {3.33, 7.78}}, got[0].V)
}

func TestExtractEmpty(t *testing.T) {
	if got := Extract(nil); len(got) != 0 {
		t.Errorf("expected no contours, got %d", len(got))
	}
	if got := Extract([]Command{ClosePath(), {Op: LineTo}}); len(got) != 0 {
		t.Errorf("expected no contours from malformed input, got %d", len(got))
	}
}

func TestBoundsAndTranslate(t *testing.T) {
	c := Contour{
		Closed: true,
		V:      []Point{{0, 0}, {10, 0}},
		I:      []Point{{0, 0}, {0, 5}},
		O:      []Point{{0, -3}, {0, 0}},
	}
	diff(t, Rect{MinX: 0, MinY: -3, MaxX: 10, MaxY: 5}, c.Bounds())

	moved := c.Translate(Pt(1, 1))
	diff(t, []Point{{1, 1}, {11, 1}}, moved.V)
	diff(t, c.I, moved.I)
	if c.V[0] != (Point{0, 0}) {
		t.Error("Translate mutated its receiver")
	}
}
