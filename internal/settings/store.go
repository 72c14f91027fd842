// Package settings persists small UI preferences as a JSON file under the
// user's config directory. It backs the toggles screen in the TUI; nothing
// brew-critical lives here.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Settings struct {
	FinishedSound bool `json:"finishedSound"`
	KeepScreenOn  bool `json:"keepScreenOn"`
}

func Default() Settings {
	return Settings{
		FinishedSound: true,
		KeepScreenOn:  false,
	}
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved settings, or defaults when no file exists yet.
func (s *Store) Load() (Settings, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Default(), fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

func (s *Store) Save(settings Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	raw, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
