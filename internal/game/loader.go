package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "games", "default.yaml")
}

func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "games", profile+".yaml")
}

// Loader reads YAML tuning and layers it: built-in defaults → default.yaml → <profile>.yaml.
// Missing files are skipped, so an empty directory yields Defaults().
type Loader struct {
	paths   Paths
	profile string

	mu      sync.RWMutex
	current *Config
}

// NewLoader creates a tuning loader for the given base directory and optional profile.
func NewLoader(baseDir, profile string) *Loader {
	return &Loader{
		paths:   Paths{BaseDir: baseDir},
		profile: profile,
	}
}

// Watched lists the files whose changes should trigger Reload.
func (l *Loader) Watched() []string {
	paths := []string{l.paths.DefaultPath()}
	if l.profile != "" {
		paths = append(paths, l.paths.ProfilePath(l.profile))
	}
	return paths
}

// Current returns the last successfully loaded tuning, loading it on first use.
// When loading fails it falls back to Defaults().
func (l *Loader) Current() Config {
	l.mu.RLock()
	if l.current != nil {
		cfg := *l.current
		l.mu.RUnlock()
		return cfg
	}
	l.mu.RUnlock()

	cfg, err := l.Reload()
	if err != nil {
		log.Error().
			Err(err).
			Str("evt.name", "tuning.load.failed").
			Msg("using built-in tuning")
		return Defaults()
	}
	return cfg
}

// Reload reads and validates the files again. On failure the previous tuning
// stays in effect.
func (l *Loader) Reload() (Config, error) {
	cfg := Defaults()
	for _, path := range l.Watched() {
		found, err := overlayYAML(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if found {
			log.Debug().Str("evt.name", "tuning.layer").Str("path", path).Msg("applied tuning layer")
		}
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	l.mu.Lock()
	l.current = &cfg
	l.mu.Unlock()
	return cfg, nil
}

// overlayYAML decodes path on top of cfg. A missing file is not an error.
func overlayYAML(path string, cfg *Config) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return false, err
	}
	return true, nil
}
