package font

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/bezier"
	"golang.org/x/image/font/gofont/goregular"
)

func TestSupports(t *testing.T) {
	f := Default()

	if !f.Supports("Hello, World!") {
		t.Error("Go Regular should cover basic Latin")
	}
	if f.Supports("日本") {
		t.Error("Go Regular has no CJK glyphs")
	}
	missing := f.Missing("a日b本日")
	if len(missing) != 2 || missing[0] != '日' || missing[1] != '本' {
		t.Errorf("unexpected missing runes: %q", missing)
	}
}

func TestGlyphOutline(t *testing.T) {
	f := Default()

	cmds, err := f.GlyphOutline('O', 100)
	if err != nil {
		t.Fatalf("GlyphOutline failed: %v", err)
	}
	contours := bezier.Extract(cmds)
	if len(contours) != 2 {
		t.Fatalf("'O' should have 2 contours, got %d", len(contours))
	}
	box := bezier.BoundsOf(contours)
	// y grows downward: the glyph sits above the baseline.
	if box.MaxY > 5 || box.MinY > -50 {
		t.Errorf("glyph should sit above the baseline: %+v", box)
	}
	if box.Width() < 30 || box.Width() > 100 {
		t.Errorf("unexpected glyph width %.2f at size 100", box.Width())
	}

	if _, err := f.GlyphOutline('日', 100); err == nil {
		t.Error("expected error for a missing glyph")
	}
}

func TestAdvance(t *testing.T) {
	f := Default()

	one := f.Advance("H", 50)
	two := f.Advance("HH", 50)
	if one <= 0 {
		t.Fatalf("advance should be positive, got %f", one)
	}
	if d := two - 2*one; d > 1e-6 || d < -1e-6 {
		t.Errorf("HH should be twice H: %f vs %f", two, one)
	}
	if big := f.Advance("H", 100); big < 1.99*one || big > 2.01*one {
		t.Errorf("advance should scale linearly: %f vs %f", big, one)
	}
	if ch := f.CapHeight(100); ch <= 0 || ch > 100 {
		t.Errorf("unexpected cap height %f", ch)
	}
}

func TestCacheSingleFlight(t *testing.T) {
	c := NewCache(nil)
	var loads int32
	release := make(chan struct{})
	c.loadFn = func(path string) (*Font, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return Parse(path, goregular.TTF)
	}

	var wg sync.WaitGroup
	results := make([]*Font, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := c.Load("shared.ttf")
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = f
		}(i)
	}
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&loads); n < 1 || n > int32(len(results)) {
		t.Errorf("unexpected load count %d", n)
	}
	for _, f := range results {
		if f != results[0] {
			t.Fatal("callers received different font instances")
		}
	}

	again, err := c.Load("shared.ttf")
	if err != nil || again != results[0] {
		t.Error("cached font not reused")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 cached font, got %d", c.Len())
	}
}

func TestCacheLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCache(nil)
	f, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if f.Name() != path {
		t.Errorf("unexpected name %s", f.Name())
	}

	_, err = c.Load(filepath.Join(dir, "missing.ttf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}

	builtin, err := c.Load("")
	if err != nil || builtin.Name() != BuiltinName {
		t.Errorf("empty path should load the builtin font: %v", err)
	}
}
