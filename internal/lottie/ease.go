package lottie

// progress maps the linear segment progress u to the eased progress given by
// the keyframe's out handle o and the next keyframe's in handle i, both
// control points of a cubic bezier from (0,0) to (1,1). Missing handles mean
// linear motion.
func progress(o, i *Ease, u float64) float64 {
	if o == nil || i == nil || len(o.X) == 0 || len(o.Y) == 0 || len(i.X) == 0 || len(i.Y) == 0 {
		return u
	}
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	x1, y1, x2, y2 := o.X[0], o.Y[0], i.X[0], i.Y[0]

	// x(s) is monotonic for handles inside the unit square; bisect for s.
	lo, hi := 0.0, 1.0
	s := u
	for n := 0; n < 60; n++ {
		s = (lo + hi) / 2
		if bezier1D(x1, x2, s) < u {
			lo = s
		} else {
			hi = s
		}
	}
	return bezier1D(y1, y2, s)
}

func bezier1D(p1, p2, s float64) float64 {
	r := 1 - s
	return 3*r*r*s*p1 + 3*r*s*s*p2 + s*s*s
}
