package effects

import (
	"math"
	"sort"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
)

// ordered returns the descriptors sorted by ascending priority, keeping input
// order on ties. An empty list becomes a single zero (None) descriptor.
func ordered[T any, P any](descs []Descriptor[T, P]) []Descriptor[T, P] {
	if len(descs) == 0 {
		return []Descriptor[T, P]{{}}
	}
	out := append([]Descriptor[T, P](nil), descs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// ApplyTransforms folds the transform descriptors over base.
func ApplyTransforms(descs []TransformDescriptor, base lottie.Transform, ctx GenerationContext) lottie.Transform {
	acc := base
	for _, d := range ordered(descs) {
		acc = mergeTransform(acc, BuildTransform(d.Type, ctx, d.Params), d.Compose, d.Priority)
	}
	return acc
}

// ApplyLetters folds the letter descriptors of one glyph over base.
func ApplyLetters(descs []LetterDescriptor, base lottie.Transform, ctx GenerationContext, l LetterContext) lottie.Transform {
	acc := base
	for _, d := range ordered(descs) {
		acc = mergeTransform(acc, BuildLetter(d.Type, ctx, l, d.Params), d.Compose, d.Priority)
	}
	return acc
}

// ApplyColors folds the color descriptors of one glyph into an RGBA property.
// base is the color of ColorNone.
func ApplyColors(descs []ColorDescriptor, base Color, ctx GenerationContext, l LetterContext) *lottie.Value {
	var acc *lottie.Value
	for _, d := range ordered(descs) {
		patch := BuildColor(d.Type, ctx, l, d.Params, base)
		acc = composeColor(acc, patch, d.Compose, d.Priority)
	}
	return acc
}

// mergeTransform overwrites the channels the patch sets, each through the
// strategy; channels the patch leaves nil keep their accumulated value.
func mergeTransform(acc, patch lottie.Transform, s Strategy, priority float64) lottie.Transform {
	field := func(old, next *lottie.Value) *lottie.Value {
		if next == nil {
			return old
		}
		return composeValue(old, next, s, priority)
	}
	acc.Anchor = field(acc.Anchor, patch.Anchor)
	acc.Position = field(acc.Position, patch.Position)
	acc.Scale = field(acc.Scale, patch.Scale)
	acc.Rotation = field(acc.Rotation, patch.Rotation)
	acc.Opacity = field(acc.Opacity, patch.Opacity)
	acc.Skew = field(acc.Skew, patch.Skew)
	acc.SkewAxis = field(acc.SkewAxis, patch.SkewAxis)
	return acc
}

// composeValue combines one numeric property. When the operands cannot be
// combined (different keyframe counts) the new value wins.
func composeValue(old, next *lottie.Value, s Strategy, priority float64) *lottie.Value {
	switch s.Kind {
	case PriorityGate:
		if priority <= s.Threshold {
			return old
		}
		return next
	case Additive:
		if old == nil {
			return next
		}
		return combine(old, next, func(a, b lottie.Track[float64]) lottie.Track[float64] { return lottie.Sum(a, b) }, addStatic)
	case Blend:
		if old == nil {
			return next
		}
		w := s.weight()
		return combine(old, next,
			func(a, b lottie.Track[float64]) lottie.Track[float64] { return lottie.Lerp(a, b, w) },
			func(a, b []float64) []float64 { return lottie.LerpValues(a, b, w) })
	default:
		return next
	}
}

func addStatic(a, b []float64) []float64 {
	out := make([]float64, max(len(a), len(b)))
	for i := range out {
		if i < len(a) {
			out[i] += a[i]
		}
		if i < len(b) {
			out[i] += b[i]
		}
	}
	return out
}

// combine applies a track operation or its static counterpart. A static
// operand facing an animated one is held over the other's keyframe times.
func combine(old, next *lottie.Value, tracks func(a, b lottie.Track[float64]) lottie.Track[float64], values func(a, b []float64) []float64) *lottie.Value {
	switch {
	case !old.Animated && !next.Animated:
		v := lottie.Static(values(old.Value, next.Value)...)
		v.Unwrap = old.Unwrap && next.Unwrap
		return v
	case old.Animated && next.Animated:
		if len(old.Track) != len(next.Track) {
			return next
		}
		return lottie.Animated(tracks(old.Track, next.Track))
	case old.Animated:
		return lottie.Animated(tracks(old.Track, hold(next.Value, old.Track)))
	default:
		return lottie.Animated(tracks(hold(old.Value, next.Track), next.Track))
	}
}

// hold is a track with the keyframe times of like that keeps v throughout.
func hold(v []float64, like lottie.Track[float64]) lottie.Track[float64] {
	points := make([][]float64, len(like))
	times := make([]float64, len(like))
	for i, kf := range like {
		points[i] = v
		times[i] = kf.T
	}
	return lottie.BuildRawKeyframes(points, times, false)
}

// composeColor is composeValue for colors: additive and blend only apply to
// colors that are static or whose keyframes share the same times; otherwise
// the later color is taken.
func composeColor(old, next *lottie.Value, s Strategy, priority float64) *lottie.Value {
	if s.Kind == PriorityGate {
		return composeValue(old, next, s, priority)
	}
	if old == nil || s.Kind == Overwrite || !colorsAligned(old, next) {
		return next
	}
	out := composeValue(old, next, s, priority)
	clampColor(out)
	return out
}

func colorsAligned(a, b *lottie.Value) bool {
	if !a.Animated && !b.Animated {
		return true
	}
	if a.Animated != b.Animated || len(a.Track) != len(b.Track) {
		return false
	}
	for i := range a.Track {
		if a.Track[i].T != b.Track[i].T {
			return false
		}
	}
	return true
}

func clampColor(v *lottie.Value) {
	clamp := func(xs []float64) {
		for i := range xs {
			xs[i] = math.Min(math.Max(xs[i], 0), 1)
		}
	}
	clamp(v.Value)
	for i := range v.Track {
		clamp(v.Track[i].S)
		clamp(v.Track[i].E)
	}
}
