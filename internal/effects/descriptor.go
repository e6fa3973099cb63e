// Package effects maps animation descriptors to Lottie property patches and
// composes ordered descriptor lists into final transforms and colors.
package effects

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/morph"
)

// TransformType selects a layer transform animation.
type TransformType int

const (
	TransformNone TransformType = iota
	TransformSlideLoop
	TransformScalePulse
	TransformRotateContinuous
	TransformShakeLoop
	TransformVibrate
	TransformBounce
)

// ColorType selects a fill or stroke color animation.
type ColorType int

const (
	ColorNone ColorType = iota
	ColorCycleRGB
	ColorRainbow
)

// LetterType selects a per-glyph transform animation.
type LetterType int

const (
	LetterNone LetterType = iota
	LetterVibrate
	LetterWave
	LetterZigZag
	LetterTypingFall
	LetterRotate
)

type enumNames []string

func (n enumNames) name(i int) string {
	if i < 0 || i >= len(n) {
		return n[0]
	}
	return n[i]
}

func (n enumNames) parse(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range n {
		if name == s {
			return i, true
		}
	}
	return 0, false
}

func (n enumNames) decode(value *yaml.Node, what string) (int, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	i, ok := n.parse(s)
	if !ok {
		return 0, fmt.Errorf("line %d: unknown %s %q", value.Line, what, s)
	}
	return i, nil
}

var (
	transformNames = enumNames{"none", "slide_loop", "scale_pulse", "rotate_continuous", "shake_loop", "vibrate", "bounce"}
	colorNames     = enumNames{"none", "cycle_rgb", "rainbow"}
	letterNames    = enumNames{"none", "vibrate", "wave", "zigzag", "typing_fall", "rotate"}
	strategyNames  = enumNames{"overwrite", "additive", "blend", "priority_gate"}
)

func (t TransformType) String() string { return transformNames.name(int(t)) }
func (t ColorType) String() string     { return colorNames.name(int(t)) }
func (t LetterType) String() string    { return letterNames.name(int(t)) }

// ParseTransformType resolves a name; unknown names yield TransformNone and false.
func ParseTransformType(s string) (TransformType, bool) {
	i, ok := transformNames.parse(s)
	return TransformType(i), ok
}

// ParseColorType resolves a name; unknown names yield ColorNone and false.
func ParseColorType(s string) (ColorType, bool) {
	i, ok := colorNames.parse(s)
	return ColorType(i), ok
}

// ParseLetterType resolves a name; unknown names yield LetterNone and false.
func ParseLetterType(s string) (LetterType, bool) {
	i, ok := letterNames.parse(s)
	return LetterType(i), ok
}

func (t *TransformType) UnmarshalYAML(value *yaml.Node) error {
	i, err := transformNames.decode(value, "transform animation")
	*t = TransformType(i)
	return err
}

func (t *ColorType) UnmarshalYAML(value *yaml.Node) error {
	i, err := colorNames.decode(value, "color animation")
	*t = ColorType(i)
	return err
}

func (t *LetterType) UnmarshalYAML(value *yaml.Node) error {
	i, err := letterNames.decode(value, "letter animation")
	*t = LetterType(i)
	return err
}

func (t TransformType) MarshalYAML() (interface{}, error) { return t.String(), nil }
func (t ColorType) MarshalYAML() (interface{}, error)     { return t.String(), nil }
func (t LetterType) MarshalYAML() (interface{}, error)    { return t.String(), nil }

// StrategyKind names a composition strategy.
type StrategyKind int

const (
	// Overwrite replaces every property the new patch sets.
	Overwrite StrategyKind = iota
	// Additive sums compatible values and otherwise takes the new one.
	Additive
	// Blend moves the accumulated value toward the new one by Weight.
	Blend
	// PriorityGate takes the new value only when the descriptor's priority
	// exceeds Threshold.
	PriorityGate
)

func (k StrategyKind) String() string { return strategyNames.name(int(k)) }

func (k *StrategyKind) UnmarshalYAML(value *yaml.Node) error {
	i, err := strategyNames.decode(value, "compose strategy")
	*k = StrategyKind(i)
	return err
}

func (k StrategyKind) MarshalYAML() (interface{}, error) { return k.String(), nil }

// Strategy is how a descriptor's patch is folded into the accumulated state.
type Strategy struct {
	Kind      StrategyKind `yaml:"kind"`
	Weight    float64      `yaml:"weight,omitempty"`
	Threshold float64      `yaml:"threshold,omitempty"`
}

const defaultBlendWeight = 0.5

func (s Strategy) weight() float64 {
	if s.Weight <= 0 || s.Weight > 1 {
		return defaultBlendWeight
	}
	return s.Weight
}

// Descriptor is one requested animation: its type, parameter overrides,
// ordering priority and composition strategy.
type Descriptor[T any, P any] struct {
	Type     T        `yaml:"type"`
	Params   P        `yaml:"params,omitempty"`
	Priority float64  `yaml:"priority,omitempty"`
	Compose  Strategy `yaml:"compose,omitempty"`
}

type (
	TransformDescriptor = Descriptor[TransformType, TransformParams]
	ColorDescriptor     = Descriptor[ColorType, ColorParams]
	LetterDescriptor    = Descriptor[LetterType, LetterParams]
	MorphDescriptor     = Descriptor[morph.Kind, morph.Params]
)

// TransformParams tunes transform animations. Zero fields take defaults.
type TransformParams struct {
	Amplitude float64 `yaml:"amplitude,omitempty"`
	Min       float64 `yaml:"min,omitempty"`
	Max       float64 `yaml:"max,omitempty"`
	From      float64 `yaml:"from,omitempty"`
	To        float64 `yaml:"to,omitempty"`
	Loop      bool    `yaml:"loop,omitempty"`
	Steps     int     `yaml:"steps,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
}

// ColorParams tunes color animations. Zero fields take defaults.
type ColorParams struct {
	Colors    []Color `yaml:"colors,omitempty"`
	Phase     float64 `yaml:"phase,omitempty"`
	PhaseStep float64 `yaml:"phase_step,omitempty"`
	Base      *Color  `yaml:"base,omitempty"`
}

// LetterParams tunes per-glyph animations. Zero fields take defaults.
type LetterParams struct {
	Amplitude    float64 `yaml:"amplitude,omitempty"`
	Steps        int     `yaml:"steps,omitempty"`
	PhaseStep    float64 `yaml:"phase_step,omitempty"`
	ScaleAmount  float64 `yaml:"scale_amount,omitempty"`
	DelayFactor  float64 `yaml:"delay_factor,omitempty"`
	FallHeight   float64 `yaml:"fall_height,omitempty"`
	FallFraction float64 `yaml:"fall_fraction,omitempty"`
	Angle        float64 `yaml:"angle,omitempty"`
}

// GenerationContext is the read-only input shared by every builder of one
// generation call. Duration is in frames.
type GenerationContext struct {
	Width        float64
	Height       float64
	Duration     float64
	FrameRate    float64
	Seed         int64
	CanvasHeight float64
}

// Center is the middle of the canvas.
func (c GenerationContext) Center() []float64 {
	return []float64{c.Width / 2, c.Height / 2}
}

// LetterContext locates one glyph. X and Y are its resting position in layer
// coordinates; Anchor is the point of the glyph it rotates and scales around.
type LetterContext struct {
	Index  int
	X, Y   float64
	Anchor []float64
}
