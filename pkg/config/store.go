package config

import (
	"sync"

	"github.com/arthur-debert/iconrules/pkg/types"
)

// Store holds the current settings. Readers always see a consistent
// snapshot; Update replaces it.
type Store struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStore creates a store holding s
func NewStore(s Settings) *Store {
	return &Store{settings: s}
}

// Settings returns the current settings
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to a copy of the settings and stores the result if it
// validates
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	next.Rules = append([]types.Rule(nil), s.settings.Rules...)
	next.ManualIcons = append([]ManualIcon(nil), s.settings.ManualIcons...)
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.settings = next
	return nil
}

// Rules returns the configured rules
func (s *Store) Rules() []types.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Rule(nil), s.settings.Rules...)
}

// InjectionEnabled reports whether label injection is on
func (s *Store) InjectionEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Injection.Enabled
}

// IconIdentifier returns the shortcode delimiter
func (s *Store) IconIdentifier() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.IconIdentifier
}
