package lottie

import (
	"fmt"
	"slices"
)

// Ease is a cubic-bezier control point of a keyframe ("i"/"o" in the wire format).
type Ease struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

func easeIn() *Ease  { return &Ease{X: []float64{0.667}, Y: []float64{1}} }
func easeOut() *Ease { return &Ease{X: []float64{0.333}, Y: []float64{0}} }

// Keyframe is one time-stamped value of an animated property. S is the value
// at T and E the value at the next keyframe; the last keyframe of a track has
// no E.
type Keyframe[V any] struct {
	T float64 `json:"t"`
	S []V     `json:"s"`
	E []V     `json:"e,omitempty"`
	I *Ease   `json:"i,omitempty"`
	O *Ease   `json:"o,omitempty"`
}

// Track is a time-ordered keyframe sequence.
type Track[V any] []Keyframe[V]

// BuildRawKeyframes turns parallel value/time lists into a track with the
// standard ease between consecutive keyframes. With loop set, the final value
// is replaced by the first one so that a cyclic player sees no jump.
func BuildRawKeyframes[V any](points [][]V, times []float64, loop bool) Track[V] {
	n := min(len(points), len(times))
	if n == 0 {
		return nil
	}
	track := make(Track[V], n)
	for i := 0; i < n; i++ {
		kf := Keyframe[V]{T: times[i], S: slices.Clone(points[i])}
		if i < n-1 {
			kf.E = slices.Clone(points[i+1])
			kf.I = easeIn()
			kf.O = easeOut()
		}
		track[i] = kf
	}
	if loop && n > 1 {
		track[n-1].S = slices.Clone(points[0])
		track[n-2].E = slices.Clone(points[0])
	}
	return track
}

// UniformTimes returns n+1 evenly spaced times covering [0, duration].
func UniformTimes(n int, duration float64) []float64 {
	if n <= 0 {
		return []float64{0}
	}
	times := make([]float64, n+1)
	for i := range times {
		times[i] = duration * float64(i) / float64(n)
	}
	return times
}

// Sum adds two numeric tracks keyframe by keyframe. Times come from a. When
// the lengths differ the excess of the longer track is dropped.
func Sum(a, b Track[float64]) Track[float64] {
	return zipTracks(a, b, func(x, y []float64) []float64 { return addValues(x, y) }, func(ta, _ float64) float64 { return ta })
}

// Lerp blends two numeric tracks with a fixed weight toward b. Excess
// keyframes of the longer track are dropped.
func Lerp(a, b Track[float64], w float64) Track[float64] {
	return zipTracks(a, b, func(x, y []float64) []float64 { return LerpValues(x, y, w) }, func(ta, tb float64) float64 { return ta + (tb-ta)*w })
}

func zipTracks(a, b Track[float64], op func(x, y []float64) []float64, tf func(ta, tb float64) float64) Track[float64] {
	n := min(len(a), len(b))
	if n == 0 {
		return nil
	}
	out := make(Track[float64], n)
	for i := 0; i < n; i++ {
		kf := Keyframe[float64]{
			T: tf(a[i].T, b[i].T),
			S: op(a[i].S, b[i].S),
			I: a[i].I,
			O: a[i].O,
		}
		if a[i].E != nil && b[i].E != nil {
			kf.E = op(a[i].E, b[i].E)
		}
		out[i] = kf
	}
	trimLast(out)
	return out
}

// Stitch appends b after a, shifting b in time so that it starts where a ends.
func Stitch[V any](a, b Track[V]) Track[V] {
	if len(a) == 0 {
		return slices.Clone(b)
	}
	if len(b) == 0 {
		return slices.Clone(a)
	}
	shift := a[len(a)-1].T - b[0].T
	out := make(Track[V], 0, len(a)+len(b))
	out = append(out, a...)
	last := &out[len(out)-1]
	last.E = slices.Clone(b[0].S)
	last.I, last.O = easeIn(), easeOut()
	for _, kf := range b {
		kf.T += shift
		out = append(out, kf)
	}
	return out
}

// Evaluate samples a numeric track at time t, following the keyframe ease
// inside a segment. Before the first and after the last keyframe the edge
// value is held.
func Evaluate(track Track[float64], t float64) []float64 {
	return Sample(track, t, LerpValues)
}

// Sample is Evaluate for any value type given its interpolation function.
func Sample[V any](track Track[V], t float64, lerp func(a, b []V, u float64) []V) []V {
	if len(track) == 0 {
		return nil
	}
	if t <= track[0].T {
		return track[0].S
	}
	for i := 0; i < len(track)-1; i++ {
		kf := track[i]
		next := track[i+1]
		if t < next.T {
			end := kf.E
			if end == nil {
				end = next.S
			}
			span := next.T - kf.T
			if span <= 0 {
				return next.S
			}
			return lerp(kf.S, end, progress(kf.O, kf.I, (t-kf.T)/span))
		}
	}
	return track[len(track)-1].S
}

// Validate checks the structural invariants of a track.
func Validate[V any](track Track[V]) error {
	for i := 1; i < len(track); i++ {
		if track[i].T < track[i-1].T {
			return fmt.Errorf("keyframe %d: time %.3f goes back from %.3f", i, track[i].T, track[i-1].T)
		}
	}
	if n := len(track); n > 0 && track[n-1].E != nil {
		return fmt.Errorf("last keyframe carries an end value")
	}
	return nil
}

// LerpValues interpolates two vectors component-wise. Missing components of
// the shorter vector count as zero.
func LerpValues(a, b []float64, u float64) []float64 {
	out := make([]float64, max(len(a), len(b)))
	for i := range out {
		x, y := at(a, i), at(b, i)
		out[i] = x + (y-x)*u
	}
	return out
}

func addValues(a, b []float64) []float64 {
	out := make([]float64, max(len(a), len(b)))
	for i := range out {
		out[i] = at(a, i) + at(b, i)
	}
	return out
}

func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func trimLast[V any](track Track[V]) {
	if n := len(track); n > 0 {
		track[n-1].E = nil
		track[n-1].I = nil
		track[n-1].O = nil
	}
}
