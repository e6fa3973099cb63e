package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/effects"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/engine"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/morph"
)

const presetYAML = `
name: neon
transform:
  - type: scale_pulse
    params: {min: 95, max: 105}
  - type: vibrate
    priority: 2
    compose: {kind: additive}
color:
  - type: rainbow
    params: {phase_step: 0.1}
stroke:
  - type: none
    params: {base: "#000000"}
letter:
  - type: typing_fall
    params: {delay_factor: 6}
path_morph:
  - type: skew_swing
backgrounds:
  - kind: stripes
    color: [1, 1, 1, 0.25]
    stripes: 6
    transform:
      - type: slide_loop
knockout:
  color: "#ffffff"
  padding_factor: 0.12
stroke_width: 3
`

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset([]byte(presetYAML))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "neon" || len(p.Transform) != 2 || p.Transform[1].Compose.Kind != effects.Additive {
		t.Errorf("transform = %+v", p.Transform)
	}
	if p.PathMorph[0].Type != morph.SkewSwing {
		t.Errorf("morph = %v", p.PathMorph[0].Type)
	}
	if p.Backgrounds[0].Kind != engine.BackgroundStripes || p.Backgrounds[0].Stripes != 6 {
		t.Errorf("background = %+v", p.Backgrounds[0])
	}
	if diff := cmp.Diff(effects.Color{1, 1, 1, 0.25}, p.Backgrounds[0].Color); diff != "" {
		t.Errorf("background color (-want +got):\n%s", diff)
	}
	if p.Knockout == nil || p.Knockout.PaddingFactor != 0.12 {
		t.Errorf("knockout = %+v", p.Knockout)
	}
}

func TestPresetRoundTrip(t *testing.T) {
	p, err := ParsePreset([]byte(presetYAML))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "neon.yaml")
	if err := WritePreset(p, path); err != nil {
		t.Fatal(err)
	}
	back, err := ReadPreset(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestPresetValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown type", "transform:\n  - type: teleport\n", "unknown transform animation"},
		{"blend weight", "color:\n  - type: none\n    compose: {kind: blend, weight: 2}\n", "blend weight"},
		{"knockout", "knockout: {padding_factor: -1}\n", "padding factor"},
		{"stripes", "backgrounds:\n  - kind: stripes\n    stripes: -2\n", "negative size"},
		{"bad color", "fill_color: \"#zz\"\n", "invalid color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePreset([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want an error containing %q", err, tt.want)
			}
		})
	}
}

func TestConfigRequest(t *testing.T) {
	c := Default()
	c.Seed = 5
	c.Duration = 2.5
	req := c.Request("01_hi", "hi", DefaultPreset())
	if req.Duration != 150 || req.FrameRate != 60 || req.Width != 512 {
		t.Errorf("geometry = %+v", req)
	}
	if req.Seed != 5 || len(req.Transforms) != 1 || len(req.Colors) != 1 {
		t.Errorf("request = %+v", req)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
	c.Format = "gif"
	c.FPS = 0
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "gif") || !strings.Contains(err.Error(), "fps") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestDefaultFromEnv(t *testing.T) {
	t.Setenv("TGS_WORKERS", "3")
	t.Setenv("TGS_FONT", "/fonts/x.ttf")
	t.Setenv("TGS_SEED", "0x10")
	t.Setenv("TGS_FONT_SIZE", "72")
	c := Default()
	if c.Workers != 3 || c.FontPath != "/fonts/x.ttf" || c.Seed != 16 || c.FontSize != 72 {
		t.Errorf("config = %+v", c)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Hello, World!": "01_hello_world",
		"日本":            "01_sticker",
		"a  b":          "01_a_b",
	}
	for in, want := range tests {
		if got := Slug(in, 0); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Slug("x", 9); got != "10_x" {
		t.Errorf("index: %q", got)
	}
}
