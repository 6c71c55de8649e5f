// Package store persists the small set of integers a player keeps between runs.
package store

import (
	"errors"
	"sync"
)

// Keys
const (
	KeyScore     = "score"     // last finished run
	KeyScoreRate = "scoreRate" // active score multiplier
	KeyBest      = "best"      // highest finished run
)

// ErrNotFound is returned by Get for a key that was never set.
var ErrNotFound = errors.New("key not found")

// Store is an integer key-value store.
type Store interface {
	Get(key string) (int, error)
	Set(key string, value int) error
}

// GetOr returns the stored value, or fallback when the key is missing.
// Other errors are returned with the fallback.
func GetOr(s Store, key string, fallback int) (int, error) {
	v, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return v, nil
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]int)}
}

func (m *Memory) Get(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
