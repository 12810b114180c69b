package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// Storage location of remembered preferences
const (
	preferencesObject   = "preferences"
	preferencesProperty = "config"
)

// Store remembers the last used configuration in the per-user data directory.
// Only preferences are kept; round state is never persisted.
type Store struct {
	manager *gdata.Manager
}

// OpenStore opens the preference store for appName
func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	return &Store{manager: m}, nil
}

// Load returns the remembered config; ok is false when nothing was saved
func (s *Store) Load() (cfg *Config, ok bool, err error) {
	if !s.manager.ObjectPropExists(preferencesObject, preferencesProperty) {
		return nil, false, nil
	}

	data, err := s.manager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load preferences: %w", err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("stored preferences: %w", err)
	}
	return cfg, true, nil
}

// Save remembers cfg
func (s *Store) Save(cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := s.manager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	log.Printf("[Store] preferences saved")
	return nil
}
