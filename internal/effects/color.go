package effects

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
)

// Color is an RGBA color with components in [0, 1].
type Color [4]float64

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
	Red   = Color{1, 0, 0, 1}
	Green = Color{0, 1, 0, 1}
	Blue  = Color{0, 0, 1, 1}
)

var rainbow = []Color{
	{1, 0, 0, 1},
	{1, 0.5, 0, 1},
	{1, 1, 0, 1},
	{0, 1, 0, 1},
	{0, 0.4, 1, 1},
	{0.55, 0, 1, 1},
}

func (c Color) Values() []float64 { return []float64{c[0], c[1], c[2], c[3]} }

// ParseColor accepts "#rgb", "#rrggbb" and "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{
		float64(v>>24&0xff) / 255,
		float64(v>>16&0xff) / 255,
		float64(v>>8&0xff) / 255,
		float64(v&0xff) / 255,
	}, nil
}

// UnmarshalYAML accepts a hex string or a list of 3 or 4 components.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*c = parsed
		return nil
	}
	var parts []float64
	if err := value.Decode(&parts); err != nil {
		return err
	}
	switch len(parts) {
	case 3:
		*c = Color{parts[0], parts[1], parts[2], 1}
	case 4:
		*c = Color{parts[0], parts[1], parts[2], parts[3]}
	default:
		return fmt.Errorf("line %d: color needs 3 or 4 components, got %d", value.Line, len(parts))
	}
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.Values(), nil
}

// BuildColor returns the RGBA track of a color animation. base is the color
// held by ColorNone unless the params override it.
func BuildColor(t ColorType, ctx GenerationContext, letter LetterContext, p ColorParams, base Color) *lottie.Value {
	switch t {
	case ColorCycleRGB:
		colors := p.Colors
		if len(colors) == 0 {
			colors = []Color{Red, Green, Blue}
		}
		points := make([][]float64, 0, len(colors)+1)
		for _, c := range colors {
			points = append(points, c.Values())
		}
		points = append(points, colors[0].Values())
		return animated(points, lottie.UniformTimes(len(colors), ctx.Duration), true)
	case ColorRainbow:
		return rainbowTrack(ctx, letter, p)
	default:
		if p.Base != nil {
			base = *p.Base
		}
		return constant(base.Values(), ctx.Duration)
	}
}

const defaultRainbowStep = 0.08

// rainbowTrack spaces the colors evenly, shifts every time by the letter's
// phase (wrapping around the duration) and re-sorts, so neighbouring letters
// run the same cycle out of step.
func rainbowTrack(ctx GenerationContext, letter LetterContext, p ColorParams) *lottie.Value {
	colors := p.Colors
	if len(colors) == 0 {
		colors = rainbow
	}
	step := p.PhaseStep
	if step == 0 {
		step = defaultRainbowStep
	}
	d := ctx.Duration
	phase := p.Phase + float64(letter.Index)*step
	shift := math.Mod(phase*d, d)
	if shift < 0 {
		shift += d
	}

	type stop struct {
		t float64
		c Color
	}
	stops := make([]stop, len(colors))
	for i, c := range colors {
		t := d * float64(i) / float64(len(colors))
		stops[i] = stop{t: math.Mod(t+shift, d), c: c}
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].t < stops[j].t })

	points := make([][]float64, 0, len(stops)+1)
	times := make([]float64, 0, len(stops)+1)
	for _, s := range stops {
		points = append(points, s.c.Values())
		times = append(times, s.t)
	}
	points = append(points, stops[0].c.Values())
	times = append(times, d)
	return animated(points, times, true)
}
