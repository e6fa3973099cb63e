package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/config"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/engine"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/font"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/logger"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/system"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/worker"
)

var buildVersion = "dev"

func main() {
	cfg := config.Default()
	cfg.BuildVersion = buildVersion

	outPtr := flag.String("out", cfg.OutputDir, "Output directory")
	formatPtr := flag.String("format", cfg.Format, "Output format: tgs or json")
	widthPtr := flag.Int("width", cfg.Width, "Canvas width")
	heightPtr := flag.Int("height", cfg.Height, "Canvas height")
	fpsPtr := flag.Int("fps", cfg.FPS, "Frame rate")
	durationPtr := flag.Float64("duration", cfg.Duration, "Duration in seconds")
	seedPtr := flag.Int64("seed", cfg.Seed, "Noise seed")
	fontPtr := flag.String("font", cfg.FontPath, "Font file (builtin:goregular for the embedded font)")
	fontDirPtr := flag.String("font-dir", "", "Use the most recent .ttf/.otf from this directory")
	sizePtr := flag.Float64("size", cfg.FontSize, "Font size in px (0 picks one automatically)")
	presetPtr := flag.String("preset", "", "Preset YAML file (default: scale pulse with RGB cycle)")
	dumpPtr := flag.String("write-preset", "", "Write the default preset to this path and exit")
	workersPtr := flag.Int("workers", cfg.Workers, "Concurrent jobs (0 uses every CPU)")
	logPtr := flag.String("log", cfg.LogMode, "Log mode: dev or prod")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")
	stickerPtr := flag.Bool("sticker", cfg.Sticker, "Reject documents that break Telegram sticker limits")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] text [text...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.OutputDir = *outPtr
	cfg.Format = strings.ToLower(*formatPtr)
	cfg.Width, cfg.Height, cfg.FPS = *widthPtr, *heightPtr, *fpsPtr
	cfg.Duration = *durationPtr
	cfg.Seed = *seedPtr
	cfg.FontPath = *fontPtr
	cfg.FontDir = *fontDirPtr
	cfg.FontSize = *sizePtr
	cfg.PresetPath = *presetPtr
	cfg.Workers = *workersPtr
	cfg.LogMode = *logPtr
	cfg.ShowStats = *statsPtr
	cfg.Sticker = *stickerPtr

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *dumpPtr != "" {
		if err := config.WritePreset(config.DefaultPreset(), *dumpPtr); err != nil {
			log.Fatal("write preset failed", "path", *dumpPtr, "error", err)
		}
		log.Info("preset written", "path", *dumpPtr)
		return
	}

	texts := flag.Args()
	if len(texts) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed, err := run(ctx, cfg, texts, log)
	if err != nil {
		log.Fatal("run failed", "error", err)
	}
	if failed > 0 {
		log.Error("some stickers failed", "failed", failed, "total", len(texts))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, texts []string, log *logger.Logger) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if cfg.FontDir != "" {
		latest, err := system.FindLatestFont(cfg.FontDir)
		if err != nil {
			return 0, err
		}
		cfg.FontPath = latest
		log.Info("font selected", "path", latest)
	}

	preset := config.DefaultPreset()
	if cfg.PresetPath != "" {
		p, err := config.ReadPreset(cfg.PresetPath)
		if err != nil {
			return 0, err
		}
		preset = p
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return 0, err
	}

	jobs := make([]worker.Job, len(texts))
	for i, text := range texts {
		id := config.Slug(text, i)
		jobs[i] = worker.Job{ID: id, Request: cfg.Request(id, text, preset)}
	}

	log.Info("generating", "jobs", len(jobs), "preset", preset.Name, "font", cfg.FontPath, "workers", cfg.Workers)
	start := time.Now()
	project := engine.NewProject(font.NewCache(log), log)
	results := worker.NewPool(project, cfg.Workers, log).Run(ctx, jobs)

	failed := 0
	for _, res := range results {
		if !res.Success {
			failed++
			continue
		}
		path := cfg.OutputPath(res.ID)
		if err := write(cfg, res.Document, path); err != nil {
			log.Error("write failed", "id", res.ID, "path", path, "error", err)
			failed++
			continue
		}
		log.Info("written", "id", res.ID, "path", path, "took", res.Duration)
	}

	if cfg.ShowStats {
		report := worker.Summarize(cfg.BuildVersion, results, time.Since(start))
		fmt.Print(report.String())
		f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			_ = report.WriteBenchmark(f, time.Now())
			f.Close()
		} else {
			log.Warn("cannot write benchmark.log", "error", err)
		}
	}
	return failed, nil
}

func write(cfg config.Config, doc *lottie.Document, path string) error {
	var (
		data []byte
		err  error
	)
	if cfg.Format == config.FormatJSON {
		data, err = lottie.Encode(doc)
	} else {
		data, err = lottie.EncodeTGS(doc)
	}
	if err != nil {
		return err
	}
	if cfg.Sticker && cfg.Format == config.FormatTGS {
		if err := lottie.CheckSticker(doc, len(data)); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
