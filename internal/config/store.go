package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/baalimago/dlai/internal/utils"
)

// Store owns the configuration file. Every read and write goes through its
// mutex and every mutation rewrites the full document before the lock
// releases. The lock is never held across network calls, callers snapshot
// via Configuration and release.
type Store struct {
	mu   sync.Mutex
	path string
	cfg  Configuration
}

// NewStore loads the document at path, or starts from defaults when it does
// not exist, and persists the normalized result immediately.
func NewStore(path string) (*Store, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, cfg: cfg}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

func load(path string) (Configuration, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfiguration()
		cfg.Normalize()
		return cfg, nil
	}
	var cfg Configuration
	if err := utils.ReadAndUnmarshal(path, &cfg); err != nil {
		return Configuration{}, fmt.Errorf("failed to load config at %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, fmt.Errorf("malformed config at %v: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Configuration returns a snapshot clone.
func (s *Store) Configuration() Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// Path returns the file the store persists to.
func (s *Store) Path() string {
	return s.path
}

// Replace validates, normalizes and persists next as the new configuration,
// returning the stored result.
func (s *Store) Replace(next Configuration) (Configuration, error) {
	if err := next.Validate(); err != nil {
		return Configuration{}, fmt.Errorf("malformed config: %w", err)
	}
	next.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = next.Clone()
	if err := s.persistLocked(); err != nil {
		return Configuration{}, err
	}
	return s.cfg.Clone(), nil
}

// SelectModel persists the model selection, an empty id clears it.
func (s *Store) SelectModel(modelID string) (Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trimmed := strings.TrimSpace(modelID)
	if trimmed == "" {
		s.cfg.SelectedModel = nil
	} else {
		s.cfg.SelectedModel = &trimmed
	}
	if err := s.persistLocked(); err != nil {
		return Configuration{}, err
	}
	return s.cfg.Clone(), nil
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := utils.WriteFile(s.path, &s.cfg); err != nil {
		return fmt.Errorf("failed to persist config: %w", err)
	}
	return nil
}
