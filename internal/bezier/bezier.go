// Package bezier converts glyph outlines into closed cubic-bezier contours.
package bezier

import "math"

// Op is a path command kind.
type Op int

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

// Point is an (x, y) pair; it encodes as a two-element JSON array.
type Point [2]float64

func Pt(x, y float64) Point { return Point{x, y} }

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

func (p Point) Add(o Point) Point { return Point{p[0] + o[0], p[1] + o[1]} }
func (p Point) Sub(o Point) Point { return Point{p[0] - o[0], p[1] - o[1]} }

func (p Point) Mul(k float64) Point { return Point{p[0] * k, p[1] * k} }

func (p Point) Lerp(o Point, t float64) Point {
	return Point{p[0] + (o[0]-p[0])*t, p[1] + (o[1]-p[1])*t}
}

// Command is one outline instruction with absolute coordinates. Points holds
// the control points followed by the end point: one for MoveTo and LineTo,
// two for QuadTo, three for CubicTo, none for Close.
type Command struct {
	Op     Op
	Points []Point
}

func Move(p Point) Command { return Command{Op: MoveTo, Points: []Point{p}} }
func Line(p Point) Command { return Command{Op: LineTo, Points: []Point{p}} }
func Quad(c, p Point) Command { return Command{Op: QuadTo, Points: []Point{c, p}} }
func Cubic(c1, c2, p Point) Command { return Command{Op: CubicTo, Points: []Point{c1, c2, p}} }
func ClosePath() Command { return Command{Op: Close} }
func (c Command) End() Point { return c.Points[len(c.Points)-1] }
func (c Command) valid(n int) bool { return len(c.Points) >= n }

// Contour is a cubic-bezier outline. In and Out hold tangent handles as
// offsets relative to their vertex. All three slices have the same length.
type Contour struct {
	Closed bool    `json:"c"`
	V      []Point `json:"v"`
	I      []Point `json:"i"`
	O      []Point `json:"o"`
}

// Len returns the vertex count.
func (c Contour) Len() int { return len(c.V) }

// Clone returns a deep copy.
func (c Contour) Clone() Contour {
	return Contour{
		Closed: c.Closed,
		V:      append([]Point(nil), c.V...),
		I:      append([]Point(nil), c.I...),
		O:      append([]Point(nil), c.O...),
	}
}

// Translate returns the contour moved by d. Handles are relative and stay put.
func (c Contour) Translate(d Point) Contour {
	out := c.Clone()
	for i := range out.V {
		out.V[i] = out.V[i].Add(d)
	}
	return out
}

// Round returns the contour with every value rounded to two decimals.
func (c Contour) Round() Contour {
	out := c.Clone()
	for i := range out.V {
		out.V[i] = RoundPoint(out.V[i])
		out.I[i] = RoundPoint(out.I[i])
		out.O[i] = RoundPoint(out.O[i])
	}
	return out
}

// Lerp interpolates two contours vertex by vertex. Contours with different
// vertex counts cannot be blended; a is returned up to the midpoint and b after.
func (c Contour) Lerp(o Contour, t float64) Contour {
	if c.Len() != o.Len() {
		if t < 0.5 {
			return c.Clone()
		}
		return o.Clone()
	}
	out := Contour{Closed: c.Closed, V: make([]Point, c.Len()), I: make([]Point, c.Len()), O: make([]Point, c.Len())}
	for i := range c.V {
		out.V[i] = c.V[i].Lerp(o.V[i], t)
		out.I[i] = c.I[i].Lerp(o.I[i], t)
		out.O[i] = c.O[i].Lerp(o.O[i], t)
	}
	return out
}

// LerpContours interpolates equal-length contour lists; it matches the
// signature lottie.Sample expects.
func LerpContours(a, b []Contour, t float64) []Contour {
	if len(a) != len(b) {
		if t < 0.5 {
			return a
		}
		return b
	}
	out := make([]Contour, len(a))
	for i := range a {
		out[i] = a[i].Lerp(b[i], t)
	}
	return out
}

// Rect is an axis-aligned box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the box holds no points.
func (r Rect) Empty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

func (r Rect) Center() Point {
	return Point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
}

// Union returns the smallest box containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Inset grows the box by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// EmptyRect is the identity for Union.
func EmptyRect() Rect {
	return Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Bounds returns a box containing the contour's vertices and control points.
// A cubic segment lies inside the hull of its control points, so the box
// always encloses the drawn curve.
func (c Contour) Bounds() Rect {
	r := EmptyRect()
	add := func(p Point) {
		r.MinX = math.Min(r.MinX, p[0])
		r.MinY = math.Min(r.MinY, p[1])
		r.MaxX = math.Max(r.MaxX, p[0])
		r.MaxY = math.Max(r.MaxY, p[1])
	}
	for i, v := range c.V {
		add(v)
		add(v.Add(c.I[i]))
		add(v.Add(c.O[i]))
	}
	return r
}

// BoundsOf unions the bounds of several contours.
func BoundsOf(contours []Contour) Rect {
	r := EmptyRect()
	for _, c := range contours {
		r = r.Union(c.Bounds())
	}
	return r
}

// RectContour returns a closed clockwise contour for the box.
func RectContour(r Rect) Contour {
	v := []Point{
		{r.MinX, r.MinY},
		{r.MaxX, r.MinY},
		{r.MaxX, r.MaxY},
		{r.MinX, r.MaxY},
	}
	zero := make([]Point, len(v))
	return Contour{Closed: true, V: v, I: zero, O: append([]Point(nil), zero...)}.Round()
}

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

func RoundPoint(p Point) Point {
	return Point{Round2(p[0]), Round2(p[1])}
}
