package insight

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache stores generated narratives on disk, one file per result key.
type Cache struct {
	dir    string
	maxAge time.Duration
}

func NewCache(dir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create insight cache: %w", err)
	}
	return &Cache{dir: dir, maxAge: maxAge}, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf("insight_%s.txt", key))
}

// Get returns a cached narrative unless it is missing or older than maxAge.
func (c *Cache) Get(key string) (string, bool) {
	path := c.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	if c.maxAge > 0 && time.Since(info.ModTime()) > c.maxAge {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (c *Cache) Set(key, text string) error {
	return os.WriteFile(c.path(key), []byte(text), 0644)
}
