package font

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/logger"
)

// Cache memoizes parsed fonts by path. Concurrent first loads of the same
// path share one parse.
type Cache struct {
	mu    sync.RWMutex
	fonts map[string]*Font
	group singleflight.Group
	log   *logger.Logger

	loadFn func(path string) (*Font, error)
}

func NewCache(log *logger.Logger) *Cache {
	return &Cache{
		fonts:  make(map[string]*Font),
		log:    logger.OrNop(log).With("component", "FontCache"),
		loadFn: LoadFile,
	}
}

// Load returns the cached font for path, parsing it on first use.
func (c *Cache) Load(path string) (*Font, error) {
	if path == "" {
		path = BuiltinName
	}

	c.mu.RLock()
	f, ok := c.fonts[path]
	c.mu.RUnlock()
	if ok {
		return f, nil
	}

	v, err, shared := c.group.Do(path, func() (interface{}, error) {
		c.mu.RLock()
		f, ok := c.fonts[path]
		c.mu.RUnlock()
		if ok {
			return f, nil
		}

		f, err := c.loadFn(path)
		if err != nil {
			return nil, fmt.Errorf("load font %s: %w", path, err)
		}
		c.mu.Lock()
		c.fonts[path] = f
		c.mu.Unlock()
		c.log.Debug("font loaded", "path", path, "unitsPerEm", f.UnitsPerEm())
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug("font load shared", "path", path)
	}
	return v.(*Font), nil
}

// Len returns the number of cached fonts.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fonts)
}
