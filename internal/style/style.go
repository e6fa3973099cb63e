// Package style resolves the fill and stroke of each glyph.
package style

import (
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/effects"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
)

// Options holds the colors used when no descriptor overrides them.
type Options struct {
	FillBase    effects.Color
	StrokeBase  effects.Color
	StrokeWidth float64
}

// DefaultOptions is white text without a stroke.
func DefaultOptions() Options {
	return Options{FillBase: effects.White, StrokeBase: effects.Black}
}

// LetterStyle is the resolved RGBA fill and optional stroke of one glyph.
type LetterStyle struct {
	Fill        *lottie.Value
	Stroke      *lottie.Value
	StrokeWidth float64
}

// Resolve folds the fill and stroke descriptors for one letter. The stroke
// is present when stroke descriptors are given or a width is configured.
func Resolve(fill, stroke []effects.ColorDescriptor, ctx effects.GenerationContext, l effects.LetterContext, o Options) LetterStyle {
	s := LetterStyle{Fill: effects.ApplyColors(fill, o.FillBase, ctx, l)}
	if s.Fill == nil {
		s.Fill = lottie.Static(o.FillBase.Values()...)
	}
	if len(stroke) == 0 && o.StrokeWidth <= 0 {
		return s
	}
	s.StrokeWidth = o.StrokeWidth
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = 2
	}
	s.Stroke = effects.ApplyColors(stroke, o.StrokeBase, ctx, l)
	if s.Stroke == nil {
		s.Stroke = lottie.Static(o.StrokeBase.Values()...)
	}
	return s
}

// Items returns the shape items of the style. Earlier items paint on top, so
// the stroke comes before the fill.
func (s LetterStyle) Items(rule int) []lottie.Item {
	items := make([]lottie.Item, 0, 2)
	if s.Stroke != nil {
		color, opacity := SplitRGBA(s.Stroke)
		items = append(items, lottie.NewStroke(color, opacity, s.StrokeWidth))
	}
	color, opacity := SplitRGBA(s.Fill)
	return append(items, lottie.NewFill(color, opacity, rule))
}

// SplitRGBA separates an RGBA property into an RGB color and an opacity in
// percent. The opacity is animated only when alpha leaves 1 somewhere.
func SplitRGBA(v *lottie.Value) (color, opacity *lottie.Value) {
	if v == nil {
		return lottie.Static(1, 1, 1), lottie.Scalar(100)
	}
	if !v.Animated {
		return lottie.Static(rgb(v.Value)...), lottie.Scalar(alpha(v.Value) * 100)
	}

	colorTrack := make(lottie.Track[float64], len(v.Track))
	alphaTrack := make(lottie.Track[float64], len(v.Track))
	opaque := true
	for i, kf := range v.Track {
		c, a := kf, kf
		c.S = rgb(kf.S)
		a.S = []float64{alpha(kf.S) * 100}
		if kf.E != nil {
			c.E = rgb(kf.E)
			a.E = []float64{alpha(kf.E) * 100}
		}
		if a.S[0] != 100 || (a.E != nil && a.E[0] != 100) {
			opaque = false
		}
		colorTrack[i] = c
		alphaTrack[i] = a
	}
	if opaque {
		return lottie.Animated(colorTrack), lottie.Scalar(100)
	}
	return lottie.Animated(colorTrack), lottie.Animated(alphaTrack)
}

func rgb(v []float64) []float64 {
	out := make([]float64, 3)
	copy(out, v)
	return out
}

func alpha(v []float64) float64 {
	if len(v) < 4 {
		return 1
	}
	return v[3]
}
