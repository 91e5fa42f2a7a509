// Package fixtures embeds the data served in mock mode.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
)

//go:embed data/*.json
var dataFS embed.FS

// Fixture names
const (
	Hospitals   = "hospitals.json"
	Categories  = "categories.json"
	Departments = "departments.json"
	Ratings     = "ratings.json"
	Dimensions  = "dimensions.json"
	User        = "user.json"
	Favorites   = "favorites.json"
	Messages    = "messages.json"
)

// Loader loads fixtures from the embedded filesystem
type Loader struct {
	cache map[string][]byte
	mu    sync.RWMutex
}

// NewLoader creates a new fixture loader
func NewLoader() *Loader {
	return &Loader{
		cache: make(map[string][]byte),
	}
}

// Load returns the raw bytes of a fixture
func (l *Loader) Load(name string) ([]byte, error) {
	// Check cache first
	l.mu.RLock()
	if data, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return data, nil
	}
	l.mu.RUnlock()

	content, err := dataFS.ReadFile(path.Join("data", name))
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture %s: %w", name, err)
	}

	l.mu.Lock()
	l.cache[name] = content
	l.mu.Unlock()

	return content, nil
}

// Decode unmarshals a fixture into v. Every call decodes fresh values, so
// callers may mutate what they get back.
func (l *Loader) Decode(name string, v interface{}) error {
	data, err := l.Load(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode fixture %s: %w", name, err)
	}
	return nil
}

// MustDecode decodes a fixture and panics on error (for initialization)
func (l *Loader) MustDecode(name string, v interface{}) {
	if err := l.Decode(name, v); err != nil {
		panic(fmt.Sprintf("failed to load required fixture %s: %v", name, err))
	}
}

// List returns all available fixture names
func (l *Loader) List() ([]string, error) {
	var names []string

	err := fs.WalkDir(dataFS, "data", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			names = append(names, strings.TrimPrefix(p, "data/"))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	return names, nil
}
