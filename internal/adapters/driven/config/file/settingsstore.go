// Package file provides a TOML-backed settings store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/recall-labs/recall-cli/internal/core/domain"
)

// SettingsStore persists Settings as a TOML file in the recall config
// directory. Missing files are not an error: Load returns defaults so a
// fresh install works without a config step.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a settings store rooted at configDir.
// If configDir is empty, defaults to ~/.recall.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, ".recall")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from disk. A missing file yields defaults; fields
// absent from the file keep their default values.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.DefaultSettings(), fmt.Errorf("parse config file %s: %w", s.filePath, err)
	}

	settings.Normalise()
	return settings, nil
}

// Save persists the settings to disk with restricted permissions.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
