package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/engine"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/font"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/platform/envutil"
)

// Output formats.
const (
	FormatTGS  = "tgs"
	FormatJSON = "json"
)

// Config holds the command line settings of one run.
type Config struct {
	OutputDir    string
	Format       string
	Width        int
	Height       int
	FPS          int
	Duration     float64 // seconds
	Seed         int64
	FontPath     string
	FontDir      string
	FontSize     float64
	PresetPath   string
	Workers      int
	LogMode      string
	ShowStats    bool
	Sticker      bool
	BuildVersion string
}

// Default returns the sticker defaults. TGS_FONT, TGS_FONT_SIZE, TGS_SEED,
// TGS_LOG_MODE and TGS_WORKERS override them when set.
func Default() Config {
	return Config{
		OutputDir: ".",
		Format:    FormatTGS,
		Width:     engine.DefaultSize,
		Height:    engine.DefaultSize,
		FPS:       engine.DefaultFrameRate,
		Duration:  float64(engine.DefaultFrames) / engine.DefaultFrameRate,
		FontPath:  envutil.String("TGS_FONT", font.BuiltinName),
		FontSize:  envutil.Float("TGS_FONT_SIZE", 0),
		Seed:      envutil.Int64("TGS_SEED", 0),
		LogMode:   envutil.String("TGS_LOG_MODE", "dev"),
		Workers:   envutil.Int("TGS_WORKERS", 0),
		Sticker:   true,
	}
}

// Frames is the duration in whole frames.
func (c Config) Frames() float64 {
	return math.Round(c.Duration * float64(c.FPS))
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("invalid size %dx%d", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("invalid fps %d", c.FPS))
	}
	if c.Frames() <= 0 {
		errs = append(errs, fmt.Errorf("duration %.2fs is shorter than a frame", c.Duration))
	}
	if c.FontSize < 0 || math.IsNaN(c.FontSize) || math.IsInf(c.FontSize, 0) {
		errs = append(errs, fmt.Errorf("invalid font size %v", c.FontSize))
	}
	switch c.Format {
	case FormatTGS, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	return errors.Join(errs...)
}

// OutputPath is where the document of the given id is written.
func (c Config) OutputPath(id string) string {
	return filepath.Join(c.OutputDir, id+"."+c.Format)
}

// Request builds the generation request for one text from the settings and
// an optional preset.
func (c Config) Request(id, text string, p *Preset) engine.Request {
	req := engine.Request{
		ID:        id,
		Text:      text,
		Width:     c.Width,
		Height:    c.Height,
		FrameRate: float64(c.FPS),
		Duration:  c.Frames(),
		FontPath:  c.FontPath,
		FontSize:  c.FontSize,
		Seed:      c.Seed,
	}
	if p != nil {
		p.apply(&req)
	}
	return req
}

// Slug turns a text into a file-name friendly id.
func Slug(text string, index int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "_"):
			b.WriteByte('_')
		}
		if b.Len() >= 24 {
			break
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		s = "sticker"
	}
	return fmt.Sprintf("%02d_%s", index+1, s)
}
