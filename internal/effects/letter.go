package effects

import (
	"math"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/noise"
)

const (
	defaultLetterPx     = 3
	defaultWaveSteps    = 8
	defaultWavePhase    = 0.6
	defaultWaveScale    = 5
	defaultZigZagSteps  = 6
	defaultVibrateSteps = 12
	defaultDelay        = 4
	defaultFallFraction = 0.25
	defaultFallRatio    = 0.3
	defaultLetterAngle  = 360
)

// BuildLetter returns the transform of one glyph. Every animation sets the
// anchor and rest position so that the result is a complete property bag.
func BuildLetter(t LetterType, ctx GenerationContext, l LetterContext, p LetterParams) lottie.Transform {
	rest := []float64{l.X, l.Y}
	d := ctx.Duration
	tr := lottie.Transform{Anchor: lottie.Static(anchor(l)...), Position: lottie.Static(rest...)}
	seed := noise.Mix(ctx.Seed, int64(l.Index), int64(math.Round(l.X*100)), int64(math.Round(l.Y*100)))

	switch t {
	case LetterVibrate:
		a := orDefault(p.Amplitude, defaultLetterPx)
		tr.Position = sampled(rest, stepsOr(p.Steps, defaultVibrateSteps), d, jitter(noise.New(seed), a))
	case LetterWave:
		a := orDefault(p.Amplitude, defaultLetterPx*2)
		n := stepsOr(p.Steps, defaultWaveSteps)
		phase := float64(l.Index) * orDefault(p.PhaseStep, defaultWavePhase)
		grow := orDefault(p.ScaleAmount, defaultWaveScale)
		pos := make([][]float64, n+1)
		scale := make([][]float64, n+1)
		for i := range pos {
			w := math.Sin(2*math.Pi*float64(i)/float64(n) + phase)
			pos[i] = offset(rest, 0, -a*w)
			s := 100 + grow*w
			scale[i] = []float64{s, s, 100}
		}
		times := lottie.UniformTimes(n, d)
		tr.Position = animated(pos, times, true)
		tr.Scale = animated(scale, times, true)
	case LetterZigZag:
		a := orDefault(p.Amplitude, defaultLetterPx*2)
		n := stepsOr(p.Steps, defaultZigZagSteps)
		pos := make([][]float64, n+1)
		for i := range pos {
			sign := 1.0
			if (i+l.Index)%2 == 1 {
				sign = -1
			}
			pos[i] = offset(rest, 0, sign*a)
		}
		tr.Position = animated(pos, lottie.UniformTimes(n, d), true)
	case LetterTypingFall:
		tr.Position, tr.Opacity = typingFall(ctx, l, p, rest)
	case LetterRotate:
		angle := orDefault(p.Angle, defaultLetterAngle)
		tr.Rotation = animated([][]float64{{0}, {angle}}, []float64{0, d}, false)
	}
	return tr
}

// typingFall drops the glyph into place after a delay proportional to its
// index, fading it in on the way.
func typingFall(ctx GenerationContext, l LetterContext, p LetterParams, rest []float64) (*lottie.Value, *lottie.Value) {
	d := ctx.Duration
	delay := math.Min(float64(l.Index)*orDefault(p.DelayFactor, defaultDelay), d)
	fall := orDefault(p.FallFraction, defaultFallFraction) * d
	land := math.Min(delay+fall, d)
	height := p.FallHeight
	if height == 0 {
		canvas := ctx.CanvasHeight
		if canvas == 0 {
			canvas = ctx.Height
		}
		height = canvas * defaultFallRatio
	}
	start := offset(rest, 0, -height)

	times := []float64{0, delay, land, d}
	pos := [][]float64{start, start, rest, rest}
	alpha := [][]float64{{0}, {0}, {100}, {100}}

	// Drop keyframes that would not advance time.
	var (
		kt []float64
		kp [][]float64
		ka [][]float64
	)
	for i, t := range times {
		if len(kt) > 0 && t <= kt[len(kt)-1] {
			kp[len(kp)-1] = pos[i]
			ka[len(ka)-1] = alpha[i]
			continue
		}
		kt = append(kt, t)
		kp = append(kp, pos[i])
		ka = append(ka, alpha[i])
	}
	if len(kt) == 1 {
		return lottie.Static(rest...), lottie.Scalar(100)
	}
	return animated(kp, kt, false), animated(ka, kt, false)
}

func anchor(l LetterContext) []float64 {
	if len(l.Anchor) >= 2 {
		return []float64{l.Anchor[0], l.Anchor[1]}
	}
	return []float64{0, 0}
}

func stepsOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
