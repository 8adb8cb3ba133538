package service

import (
	"errors"
	"sync"
)

// ErrNegativeValue is returned when a manual emissions value below zero is
// submitted. The store is left untouched.
var ErrNegativeValue = errors.New("emissions value must be non-negative")

// OverrideStore holds user-submitted emissions figures keyed by scope: the
// literal "national" or a region identifier. Scopes are exact, case-sensitive
// strings; "nairobi" and "Nairobi" are distinct. Values never expire and the
// last write for a scope wins. State is process-lifetime only.
type OverrideStore struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewOverrideStore creates an empty OverrideStore.
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{values: map[string]float64{}}
}

// Set records a manual emissions value for a scope, overwriting any prior
// value. Negative values are rejected with ErrNegativeValue before any
// mutation. The scope is not checked against known regions; overrides for
// unknown scopes are stored and stay inert until something reads them.
func (s *OverrideStore) Set(scope string, value float64) error {
	if value < 0 {
		return ErrNegativeValue
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope] = value
	return nil
}

// Get looks up the override for a scope. The second return is false when no
// override has been recorded.
func (s *OverrideStore) Get(scope string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[scope]
	return v, ok
}
