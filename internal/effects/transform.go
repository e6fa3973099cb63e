package effects

import (
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/noise"
)

const (
	defaultScaleMin   = 90
	defaultScaleMax   = 110
	defaultSlideRatio = 0.06
	defaultShakeSteps = 8
	defaultShakePx    = 6
	defaultVibratePx  = 4
	defaultBounceRate = 0.08
	secondBounce      = 0.4
)

// BuildTransform returns the patch of a layer transform animation. Only the
// channels the animation drives are set.
func BuildTransform(t TransformType, ctx GenerationContext, p TransformParams) lottie.Transform {
	c := ctx.Center()
	d := ctx.Duration
	switch t {
	case TransformSlideLoop:
		a := p.Amplitude
		if a == 0 {
			a = ctx.Width * defaultSlideRatio
		}
		return lottie.Transform{Position: animated(
			[][]float64{offset(c, -a, 0), offset(c, a, 0), offset(c, -a, 0)},
			[]float64{0, d / 2, d}, true)}
	case TransformScalePulse:
		lo, hi := p.Min, p.Max
		if lo == 0 {
			lo = defaultScaleMin
		}
		if hi == 0 {
			hi = defaultScaleMax
		}
		return lottie.Transform{Scale: animated(
			[][]float64{{lo, lo, 100}, {hi, hi, 100}, {lo, lo, 100}},
			[]float64{0, d / 2, d}, true)}
	case TransformRotateContinuous:
		to := p.To
		if to == 0 && p.From == 0 {
			to = 360
		}
		if p.Loop {
			return lottie.Transform{Rotation: animated(
				[][]float64{{p.From}, {to}, {p.From}}, []float64{0, d / 2, d}, true)}
		}
		return lottie.Transform{Rotation: animated([][]float64{{p.From}, {to}}, []float64{0, d}, false)}
	case TransformShakeLoop:
		a := orDefault(p.Amplitude, defaultShakePx)
		return lottie.Transform{Position: sampled(c, p.Steps, d, func(i int) (float64, float64) {
			if i%2 == 0 {
				return a, 0
			}
			return -a, 0
		})}
	case TransformVibrate:
		a := orDefault(p.Amplitude, defaultVibratePx)
		return lottie.Transform{Position: sampled(c, p.Steps, d, jitter(noise.New(ctx.Seed), a))}
	case TransformBounce:
		h := p.Height
		if h == 0 {
			h = ctx.Height * defaultBounceRate
		}
		return lottie.Transform{Position: animated(
			[][]float64{c, offset(c, 0, -h), c, offset(c, 0, -h*secondBounce), c},
			[]float64{0, d / 4, d / 2, 3 * d / 4, d}, false)}
	default:
		return lottie.Transform{Position: constant(c, d)}
	}
}

// sampled builds an n-point position track around center whose inner points
// are displaced by off and whose ends rest on center.
func sampled(center []float64, n int, d float64, off func(i int) (float64, float64)) *lottie.Value {
	if n < 3 {
		n = defaultShakeSteps
	}
	points := make([][]float64, n)
	for i := range points {
		if i == 0 || i == n-1 {
			points[i] = append([]float64(nil), center...)
			continue
		}
		dx, dy := off(i)
		points[i] = offset(center, dx, dy)
	}
	return animated(points, lottie.UniformTimes(n-1, d), false)
}

// jitter draws an (x, y) offset within ±a from rnd on each call.
func jitter(rnd *noise.Stream, a float64) func(int) (float64, float64) {
	return func(int) (float64, float64) {
		return a * rnd.Signed(), a * rnd.Signed()
	}
}

func animated(points [][]float64, times []float64, loop bool) *lottie.Value {
	return lottie.Animated(lottie.BuildRawKeyframes(points, times, loop))
}

// constant is a two-keyframe track holding v over [0, d].
func constant(v []float64, d float64) *lottie.Value {
	return animated([][]float64{v, v}, []float64{0, d}, false)
}

func offset(p []float64, dx, dy float64) []float64 {
	out := append([]float64(nil), p...)
	out[0] += dx
	out[1] += dy
	return out
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
