package game

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Watcher polls the tuning files and reloads the Loader when one of them changes.
type Watcher struct {
	loader   *Loader
	interval time.Duration
	seen     map[string]time.Time

	// OnReload is called after every reload attempt; err is nil when cfg is live.
	OnReload func(cfg Config, err error)
}

func NewWatcher(loader *Loader, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Watcher{
		loader:   loader,
		interval: interval,
		seen:     make(map[string]time.Time),
	}
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll()
	for {
		select {
		case <-ticker.C:
			if w.poll() {
				w.reload()
			}
		case <-ctx.Done():
			return
		}
	}
}

// poll records modification times and reports whether any file appeared,
// changed or disappeared since the previous poll.
func (w *Watcher) poll() bool {
	changed := false
	for _, p := range w.loader.Watched() {
		var mt time.Time
		if fi, err := os.Stat(p); err == nil {
			mt = fi.ModTime()
		}
		last, ok := w.seen[p]
		if ok && !mt.Equal(last) {
			changed = true
		}
		w.seen[p] = mt
	}
	return changed
}

func (w *Watcher) reload() {
	cfg, err := w.loader.Reload()
	if err != nil {
		log.Warn().
			Err(err).
			Str("evt.name", "tuning.reload.failed").
			Msg("keeping previous tuning")
		if w.OnReload != nil {
			w.OnReload(cfg, err)
		}
		return
	}
	log.Info().
		Str("evt.name", "tuning.reloaded").
		Str("version", cfg.Version).
		Msg("tuning reloaded")
	if w.OnReload != nil {
		w.OnReload(cfg, nil)
	}
}
