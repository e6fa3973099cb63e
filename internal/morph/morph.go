// Package morph builds cyclic contour-deformation tracks for glyph paths.
package morph

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/noise"
)

// Kind selects a deformation.
type Kind int

const (
	None Kind = iota
	Warp
	WarpAiry
	SkewPulse
	SkewSwing
)

var kindNames = [...]string{
	None:      "none",
	Warp:      "warp",
	WarpAiry:  "warp_airy",
	SkewPulse: "skew_pulse",
	SkewSwing: "skew_swing",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[None]
	}
	return kindNames[k]
}

// ParseKind resolves a kind by name. Unknown names yield None and false.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return None, false
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, ok := ParseKind(s)
	if !ok {
		return fmt.Errorf("line %d: unknown path morph %q", value.Line, s)
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// Params tunes a deformation. Zero fields take the defaults of the kind.
type Params struct {
	Intensity  float64 `yaml:"intensity,omitempty"`
	Phases     int     `yaml:"phases,omitempty"`
	SkewBase   float64 `yaml:"skew_base,omitempty"`
	SkewMin    float64 `yaml:"skew_min,omitempty"`
	SkewMax    float64 `yaml:"skew_max,omitempty"`
	SwingScale float64 `yaml:"swing_scale,omitempty"`
}

const (
	defaultWarpPhases = 3
	defaultSkewPhases = 4
	defaultSkewBase   = 0.12
	defaultSkewMin    = 0.04
	defaultSkewMax    = 0.3
	defaultSwingScale = 1.5

	// Per-vertex phase step along the contour.
	vertexStep = 0.9
	// Wave influence on handle length and angle.
	handleScale = 0.15
	handleTurn  = 0.12
)

// Options describes one morph of one contour.
type Options struct {
	Kind     Kind
	Params   Params
	Duration float64
	Seed     int64
	FontSize float64
	// Pivot is the y coordinate left in place by the skew kinds.
	Pivot float64
}

// IntensityFor derives the default intensity of a kind from the font size.
// Warps use a displacement in pixels; skews use a normalized value that is
// 1 at 100px.
func IntensityFor(k Kind, fontSize float64) float64 {
	switch k {
	case Warp:
		return fontSize * 0.025
	case WarpAiry:
		return fontSize * 0.035
	case SkewPulse, SkewSwing:
		return fontSize / 100
	default:
		return 0
	}
}

func (o Options) intensity() float64 {
	if o.Params.Intensity > 0 {
		return o.Params.Intensity
	}
	return IntensityFor(o.Kind, o.FontSize)
}

func (o Options) phases(def int) int {
	if o.Params.Phases > 0 {
		return o.Params.Phases
	}
	return def
}

// skewAmount clamps the scaled base shear into [min, max].
func (o Options) skewAmount() float64 {
	base, lo, hi := o.Params.SkewBase, o.Params.SkewMin, o.Params.SkewMax
	if base == 0 {
		base = defaultSkewBase
	}
	if lo == 0 {
		lo = defaultSkewMin
	}
	if hi == 0 {
		hi = defaultSkewMax
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(base*o.intensity(), lo), hi)
}

// States returns the deformed contour states of one cycle, rounded to two
// decimals. None and empty contours yield no states.
func States(c bezier.Contour, o Options) []bezier.Contour {
	if c.Len() == 0 {
		return nil
	}
	switch o.Kind {
	case Warp:
		return warpStates(c, o)
	case WarpAiry:
		return airyStates(c, o)
	case SkewPulse:
		n := o.phases(defaultSkewPhases)
		amount := o.skewAmount()
		states := make([]bezier.Contour, n)
		for p := 0; p < n; p++ {
			states[p] = shear(c, math.Sin(phaseAt(p, n))*amount, o.Pivot)
		}
		return states
	case SkewSwing:
		scale := o.Params.SwingScale
		if scale == 0 {
			scale = defaultSwingScale
		}
		a := o.skewAmount() * scale
		return []bezier.Contour{
			shear(c, a, o.Pivot),
			shear(c, 0, o.Pivot),
			shear(c, -a, o.Pivot),
			shear(c, 0, o.Pivot),
		}
	default:
		return nil
	}
}

// Track arranges the states of c as a seamless cycle over [0, Duration]: one
// segment per state, ending back on the first state. None yields nil.
func Track(c bezier.Contour, o Options) lottie.Track[bezier.Contour] {
	states := States(c, o)
	if len(states) == 0 {
		return nil
	}
	points := make([][]bezier.Contour, len(states)+1)
	for i, s := range states {
		points[i] = []bezier.Contour{s}
	}
	points[len(states)] = []bezier.Contour{states[0]}
	return lottie.BuildRawKeyframes(points, lottie.UniformTimes(len(states), o.Duration), true)
}

// Shape returns the path property of c: animated when the morph produces a
// track, static otherwise.
func Shape(c bezier.Contour, o Options) *lottie.Shape {
	if track := Track(c, o); track != nil {
		return lottie.Animated(track)
	}
	return lottie.StaticShape(c)
}

func phaseAt(p, n int) float64 {
	return float64(p) * 2 * math.Pi / float64(n)
}

func warpStates(c bezier.Contour, o Options) []bezier.Contour {
	n := o.phases(defaultWarpPhases)
	intensity := o.intensity()
	normals := vertexNormals(c)
	states := make([]bezier.Contour, n)
	for p := 0; p < n; p++ {
		phase := phaseAt(p, n)
		waves := make([]float64, c.Len())
		disp := make([]float64, c.Len())
		for i := range c.V {
			waves[i] = math.Sin(phase + float64(i)*vertexStep + noise.Phase(o.Seed, i))
			disp[i] = intensity * noise.Amplitude(o.Seed, i) * waves[i]
		}
		states[p] = displace(c, normals, disp, waves)
	}
	return states
}

func airyStates(c bezier.Contour, o Options) []bezier.Contour {
	const (
		lowStep  = 0.45
		highStep = 1.7
		highGain = 0.35
	)
	n := o.phases(defaultWarpPhases)
	intensity := o.intensity()
	normals := vertexNormals(c)
	states := make([]bezier.Contour, n)
	for p := 0; p < n; p++ {
		phase := phaseAt(p, n)
		waves := make([]float64, c.Len())
		for i := range c.V {
			low := math.Sin(phase + float64(i)*lowStep + noise.Phase(o.Seed, i))
			high := math.Sin(2*phase + float64(i)*highStep + noise.Phase(o.Seed^0x2f, i))
			waves[i] = (low + highGain*high) / (1 + highGain)
		}
		waves = smooth(smooth(waves))
		disp := make([]float64, len(waves))
		for i, w := range waves {
			disp[i] = intensity * noise.Amplitude(o.Seed, i) * w
		}
		states[p] = displace(c, normals, disp, waves)
	}
	return states
}

// smooth applies one cyclic (1/4, 1/2, 1/4) pass.
func smooth(v []float64) []float64 {
	n := len(v)
	if n < 3 {
		return v
	}
	out := make([]float64, n)
	for i := range v {
		out[i] = 0.25*v[(i+n-1)%n] + 0.5*v[i] + 0.25*v[(i+1)%n]
	}
	return out
}

// vertexNormals returns the unit perpendicular of the chord between each
// vertex's neighbors, or zero where the chord degenerates.
func vertexNormals(c bezier.Contour) []bezier.Point {
	n := c.Len()
	out := make([]bezier.Point, n)
	if n < 2 {
		return out
	}
	for i := range c.V {
		chord := c.V[(i+1)%n].Sub(c.V[(i+n-1)%n])
		l := math.Hypot(chord.X(), chord.Y())
		if l < 1e-9 {
			continue
		}
		out[i] = bezier.Pt(chord.Y()/l, -chord.X()/l)
	}
	return out
}

func displace(c bezier.Contour, normals []bezier.Point, disp, waves []float64) bezier.Contour {
	out := c.Clone()
	for i := range out.V {
		out.V[i] = out.V[i].Add(normals[i].Mul(disp[i]))
		scale := 1 + handleScale*waves[i]
		turn := handleTurn * waves[i]
		out.I[i] = rotate(out.I[i], turn).Mul(scale)
		out.O[i] = rotate(out.O[i], turn).Mul(scale)
	}
	return out.Round()
}

func rotate(p bezier.Point, a float64) bezier.Point {
	sin, cos := math.Sincos(a)
	return bezier.Pt(p.X()*cos-p.Y()*sin, p.X()*sin+p.Y()*cos)
}

// shear skews horizontally around the line y = pivot.
func shear(c bezier.Contour, k, pivot float64) bezier.Contour {
	out := c.Clone()
	for i := range out.V {
		v := out.V[i]
		out.V[i] = bezier.Pt(v.X()+k*(v.Y()-pivot), v.Y())
		out.I[i] = bezier.Pt(out.I[i].X()+k*out.I[i].Y(), out.I[i].Y())
		out.O[i] = bezier.Pt(out.O[i].X()+k*out.O[i].Y(), out.O[i].Y())
	}
	return out.Round()
}
