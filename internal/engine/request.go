package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/effects"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/font"
)

var (
	ErrEmptyText       = errors.New("text is empty")
	ErrInvalidFontSize = errors.New("font size must be positive")
	ErrUnsupportedText = errors.New("text contains characters the font cannot render")
	ErrInvalidGeometry = errors.New("canvas size, frame rate and duration must be positive")
)

const (
	DefaultSize      = 512
	DefaultFrameRate = 60
	DefaultFrames    = 180

	defaultPaddingRatio = 0.05
)

// Request is everything one generation needs. Duration is in frames; a zero
// FontSize picks one automatically.
type Request struct {
	ID   string
	Text string

	Transforms []effects.TransformDescriptor
	Colors     []effects.ColorDescriptor
	Strokes    []effects.ColorDescriptor
	Letters    []effects.LetterDescriptor
	Morphs     []effects.MorphDescriptor

	Backgrounds []Background
	Knockout    *Knockout

	Width     int
	Height    int
	FrameRate float64
	Duration  float64
	Padding   float64

	FontPath string
	FontSize float64
	Seed     int64

	FillColor   *effects.Color
	StrokeColor *effects.Color
	StrokeWidth float64
}

// WithDefaults fills zero geometry with the sticker defaults.
func (r Request) WithDefaults() Request {
	if r.Width == 0 {
		r.Width = DefaultSize
	}
	if r.Height == 0 {
		r.Height = DefaultSize
	}
	if r.FrameRate == 0 {
		r.FrameRate = DefaultFrameRate
	}
	if r.Duration == 0 {
		r.Duration = DefaultFrames
	}
	if r.Padding == 0 {
		r.Padding = math.Round(float64(min(r.Width, r.Height)) * defaultPaddingRatio)
	}
	if r.FontPath == "" {
		r.FontPath = font.BuiltinName
	}
	return r
}

// Validate rejects requests that cannot produce a document.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if r.Width <= 0 || r.Height <= 0 || r.FrameRate <= 0 || r.Duration <= 0 {
		return fmt.Errorf("%w: %dx%d @ %.2f fps, %.2f frames", ErrInvalidGeometry, r.Width, r.Height, r.FrameRate, r.Duration)
	}
	if r.FontSize < 0 || math.IsNaN(r.FontSize) || math.IsInf(r.FontSize, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, r.FontSize)
	}
	if 2*r.Padding >= float64(min(r.Width, r.Height)) {
		return fmt.Errorf("%w: padding %.1f leaves no room for text", ErrInvalidGeometry, r.Padding)
	}
	return nil
}

// BackgroundKind selects how a background layer is drawn.
type BackgroundKind int

const (
	// BackgroundSolid is a filled rounded rectangle with an optional outline.
	BackgroundSolid BackgroundKind = iota
	// BackgroundFrame is the same rectangle, outline only.
	BackgroundFrame
	// BackgroundStripes is a set of evenly spaced horizontal bars.
	BackgroundStripes
)

var backgroundNames = []string{"solid", "frame", "stripes"}

func (k BackgroundKind) String() string {
	if k < 0 || int(k) >= len(backgroundNames) {
		return backgroundNames[0]
	}
	return backgroundNames[k]
}

func (k *BackgroundKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for i, name := range backgroundNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			*k = BackgroundKind(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown background %q", value.Line, s)
}

func (k BackgroundKind) MarshalYAML() (interface{}, error) { return k.String(), nil }

// Background describes one background layer. Inset is the distance kept from
// the canvas edges.
type Background struct {
	Kind        BackgroundKind                `yaml:"kind"`
	Color       effects.Color                 `yaml:"color"`
	StrokeColor *effects.Color                `yaml:"stroke_color,omitempty"`
	StrokeWidth float64                       `yaml:"stroke_width,omitempty"`
	Inset       float64                       `yaml:"inset,omitempty"`
	Radius      float64                       `yaml:"radius,omitempty"`
	Stripes     int                           `yaml:"stripes,omitempty"`
	Transforms  []effects.TransformDescriptor `yaml:"transform,omitempty"`
}

// Knockout describes the cut-out layer: a rectangle around the text with the
// glyphs punched out of it.
type Knockout struct {
	Color         effects.Color `yaml:"color"`
	PaddingFactor float64       `yaml:"padding_factor"`
	Morph         bool          `yaml:"morph,omitempty"`
}
