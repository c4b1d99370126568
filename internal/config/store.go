package config

import (
	"log/slog"
	"sync"
)

// Store owns the live settings. The frame loop reads a copy every frame
// with Current; the file watcher and key handlers replace it. Every write
// is normalized, so readers always see OpacityRange <= RenderRange.
type Store struct {
	mu     sync.RWMutex
	path   string
	cur    Settings
	gen    uint64 // bumped by every Update
	logger *slog.Logger
	load   func(string) (Settings, error)
}

// NewStore loads path (defaults if missing) into a new store.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cur: cfg, logger: logger, load: Load}, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Current returns a snapshot of the settings.
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Update applies fn to a copy, normalizes it and stores the result.
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	fn(&next)
	next.Normalize()
	s.cur = next
	s.gen++
	return next
}

// Save writes the current snapshot to the backing file.
func (s *Store) Save() error {
	return Save(s.path, s.Current())
}

// Reload re-reads the backing file. On error the previous snapshot is kept.
// If an Update lands while the file is being read, the file contents are
// stale and the in-memory snapshot wins.
func (s *Store) Reload() error {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	cfg, err := s.load(s.path)
	if err != nil {
		s.logger.Warn("settings reload failed, keeping previous values", "path", s.path, "err", err)
		return err
	}
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.logger.Debug("settings changed during reload, keeping in-memory values", "path", s.path)
		return nil
	}
	changed := cfg != s.cur
	s.cur = cfg
	s.mu.Unlock()
	if changed {
		s.logger.Info("settings reloaded", "path", s.path,
			"overlay", cfg.EnableOverlay,
			"render_range", cfg.RenderRange,
			"opacity_range", cfg.OpacityRange)
	}
	return nil
}
