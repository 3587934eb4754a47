package logos

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/preston-bernstein/logo-scatter-service/internal/naming"
)

// Logo is an indexed asset in the normalized output directory.
type Logo struct {
	Key  string `json:"key"`
	File string `json:"file"`
}

// Catalog indexes normalized logos by naming.Key of their file stem, so lookups
// match regardless of whether canonical file names were produced.
type Catalog struct {
	dir string

	mu     sync.RWMutex
	byKey  map[string]Logo
	images map[string]image.Image
}

// NewCatalog returns an empty catalog for dir; call Load to index it.
func NewCatalog(dir string) *Catalog {
	return &Catalog{
		dir:    dir,
		byKey:  map[string]Logo{},
		images: map[string]image.Image{},
	}
}

// Dir returns the indexed directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// Load rescans the directory. A missing directory yields an empty catalog.
func (c *Catalog) Load() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read logo dir: %w", err)
	}

	byKey := make(map[string]Logo, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !strings.EqualFold(ext, logoExt) {
			continue
		}
		key := naming.Key(strings.TrimSuffix(name, ext))
		if key == "" {
			continue
		}
		if _, taken := byKey[key]; taken {
			continue
		}
		byKey[key] = Logo{Key: key, File: name}
	}

	c.mu.Lock()
	c.byKey = byKey
	c.images = map[string]image.Image{}
	c.mu.Unlock()
	return nil
}

// Lookup resolves a raw category label.
func (c *Catalog) Lookup(category string) (Logo, bool) {
	key := naming.Key(category)
	if key == "" {
		return Logo{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.byKey[key]
	return l, ok
}

// Open decodes the logo image, caching it until the next Load.
func (c *Catalog) Open(l Logo) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.images[l.Key]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	f, err := os.Open(filepath.Join(c.dir, l.File))
	if err != nil {
		return nil, fmt.Errorf("open logo %s: %w", l.File, err)
	}
	defer f.Close()
	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnreadableLogo, l.File, err)
	}

	c.mu.Lock()
	if current, ok := c.byKey[l.Key]; ok && current.File == l.File {
		c.images[l.Key] = img
	}
	c.mu.Unlock()
	return img, nil
}

// Keys lists every indexed key in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	c.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Logos lists every indexed logo ordered by key.
func (c *Catalog) Logos() []Logo {
	keys := c.Keys()
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Logo, 0, len(keys))
	for _, k := range keys {
		if l, ok := c.byKey[k]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Len reports how many logos are indexed.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}
