package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/effects"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/engine"
)

// Preset is a named set of descriptors and scene options stored as YAML.
type Preset struct {
	Name        string                        `yaml:"name"`
	Transform   []effects.TransformDescriptor `yaml:"transform,omitempty"`
	Color       []effects.ColorDescriptor     `yaml:"color,omitempty"`
	Stroke      []effects.ColorDescriptor     `yaml:"stroke,omitempty"`
	Letter      []effects.LetterDescriptor    `yaml:"letter,omitempty"`
	PathMorph   []effects.MorphDescriptor     `yaml:"path_morph,omitempty"`
	Backgrounds []engine.Background           `yaml:"backgrounds,omitempty"`
	Knockout    *engine.Knockout              `yaml:"knockout,omitempty"`
	FillColor   *effects.Color                `yaml:"fill_color,omitempty"`
	StrokeColor *effects.Color                `yaml:"stroke_color,omitempty"`
	StrokeWidth float64                       `yaml:"stroke_width,omitempty"`
}

// DefaultPreset pulses the text while cycling its color.
func DefaultPreset() *Preset {
	return &Preset{
		Name:      "pulse",
		Transform: []effects.TransformDescriptor{{Type: effects.TransformScalePulse}},
		Color:     []effects.ColorDescriptor{{Type: effects.ColorCycleRGB}},
	}
}

// WritePreset writes a preset to a YAML file.
func WritePreset(p *Preset, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPreset reads and validates a preset from a YAML file.
func ReadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePreset(data)
}

// ParsePreset decodes and validates preset YAML.
func ParsePreset(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return &p, nil
}

func checkStrategy(where string, priority float64, s effects.Strategy) error {
	if math.IsNaN(priority) || math.IsInf(priority, 0) {
		return fmt.Errorf("%s: priority must be finite", where)
	}
	if s.Kind == effects.Blend && (s.Weight < 0 || s.Weight > 1) {
		return fmt.Errorf("%s: blend weight %v outside [0, 1]", where, s.Weight)
	}
	return nil
}

// Validate reports every invalid entry of the preset.
func (p *Preset) Validate() error {
	var errs []error
	for i, d := range p.Transform {
		errs = append(errs, checkStrategy(fmt.Sprintf("transform[%d]", i), d.Priority, d.Compose))
		if d.Params.Min < 0 || d.Params.Max < 0 {
			errs = append(errs, fmt.Errorf("transform[%d]: scale bounds must not be negative", i))
		}
	}
	for i, d := range p.Color {
		errs = append(errs, checkStrategy(fmt.Sprintf("color[%d]", i), d.Priority, d.Compose))
	}
	for i, d := range p.Stroke {
		errs = append(errs, checkStrategy(fmt.Sprintf("stroke[%d]", i), d.Priority, d.Compose))
	}
	for i, d := range p.Letter {
		errs = append(errs, checkStrategy(fmt.Sprintf("letter[%d]", i), d.Priority, d.Compose))
		if d.Params.FallFraction < 0 || d.Params.FallFraction > 1 {
			errs = append(errs, fmt.Errorf("letter[%d]: fall fraction %v outside [0, 1]", i, d.Params.FallFraction))
		}
	}
	for i, d := range p.PathMorph {
		if d.Params.Phases < 0 {
			errs = append(errs, fmt.Errorf("path_morph[%d]: negative phase count", i))
		}
	}
	for i, bg := range p.Backgrounds {
		if bg.Stripes < 0 || bg.Inset < 0 || bg.StrokeWidth < 0 {
			errs = append(errs, fmt.Errorf("backgrounds[%d]: negative size", i))
		}
	}
	if p.Knockout != nil && p.Knockout.PaddingFactor < 0 {
		errs = append(errs, errors.New("knockout: padding factor must not be negative"))
	}
	if p.StrokeWidth < 0 {
		errs = append(errs, errors.New("stroke width must not be negative"))
	}
	return errors.Join(errs...)
}

func (p *Preset) apply(req *engine.Request) {
	req.Transforms = p.Transform
	req.Colors = p.Color
	req.Strokes = p.Stroke
	req.Letters = p.Letter
	req.Morphs = p.PathMorph
	req.Backgrounds = p.Backgrounds
	req.Knockout = p.Knockout
	req.FillColor = p.FillColor
	req.StrokeColor = p.StrokeColor
	req.StrokeWidth = p.StrokeWidth
}
