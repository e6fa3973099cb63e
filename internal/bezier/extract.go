package bezier

// closeEpsilon is how near the last vertex must be to the first one for the
// closing segment to be folded into the first vertex.
const closeEpsilon = 1e-6

// Extract converts outline commands into contours. Every contour is emitted
// closed, including a trailing one that was never explicitly closed. Values
// are rounded to two decimals. Contours with fewer than two vertices draw
// nothing and are dropped.
func Extract(cmds []Command) []Contour {
	var (
		out []Contour
		cur *Contour
	)

	flush := func() {
		if cur == nil {
			return
		}
		c := *cur
		cur = nil
		n := c.Len()
		if n > 1 && near(c.V[0], c.V[n-1]) {
			c.I[0] = c.I[n-1]
			c.V, c.I, c.O = c.V[:n-1], c.I[:n-1], c.O[:n-1]
		}
		if c.Len() < 2 {
			return
		}
		c.Closed = true
		out = append(out, c.Round())
	}

	start := func(p Point) {
		cur = &Contour{V: []Point{p}, I: []Point{{}}, O: []Point{{}}}
	}

	appendVertex := func(p, in Point) {
		cur.V = append(cur.V, p)
		cur.I = append(cur.I, in)
		cur.O = append(cur.O, Point{})
	}

	for _, cmd := range cmds {
		switch cmd.Op {
		case MoveTo:
			if !cmd.valid(1) {
				continue
			}
			flush()
			start(cmd.End())
		case LineTo:
			if !cmd.valid(1) {
				continue
			}
			if cur == nil {
				start(cmd.End())
				continue
			}
			appendVertex(cmd.End(), Point{})
		case QuadTo:
			if !cmd.valid(2) {
				continue
			}
			if cur == nil {
				start(cmd.End())
				continue
			}
			prev := cur.V[cur.Len()-1]
			c1, c2 := raiseQuad(prev, cmd.Points[0], cmd.Points[1])
			addCubic(cur, c1, c2, cmd.Points[1], appendVertex)
		case CubicTo:
			if !cmd.valid(3) {
				continue
			}
			if cur == nil {
				start(cmd.End())
				continue
			}
			addCubic(cur, cmd.Points[0], cmd.Points[1], cmd.Points[2], appendVertex)
		case Close:
			flush()
		}
	}
	flush()
	return out
}

// addCubic stores c1 as the out-handle of the current last vertex and c2 as
// the in-handle of the new end vertex.
func addCubic(cur *Contour, c1, c2, p Point, appendVertex func(p, in Point)) {
	last := cur.Len() - 1
	cur.O[last] = c1.Sub(cur.V[last])
	appendVertex(p, c2.Sub(p))
}

// raiseQuad returns the two cubic control points equivalent to the quadratic
// segment p0-c-p2.
func raiseQuad(p0, c, p2 Point) (Point, Point) {
	c1 := p0.Add(c.Sub(p0).Mul(2.0 / 3.0))
	c2 := p2.Add(c.Sub(p2).Mul(2.0 / 3.0))
	return c1, c2
}

func near(a, b Point) bool {
	d := a.Sub(b)
	return d[0]*d[0]+d[1]*d[1] < closeEpsilon*closeEpsilon
}
