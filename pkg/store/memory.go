package store

import (
	"context"
	"sync"

	"holdem-server/pkg/holdem"
)

// Memory keeps sessions in process
// Sessions are stored encoded so callers never share state with the store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	stacks   map[string]map[string]int
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string][]byte),
		stacks:   make(map[string]map[string]int),
	}
}

var _ Store = (*Memory)(nil)

// Load returns the session at the table
func (m *Memory) Load(_ context.Context, tableID string) (*holdem.Session, error) {
	m.mu.RLock()
	b, ok := m.sessions[tableID]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return decode(b)
}

// Save replaces the session at the table
func (m *Memory) Save(_ context.Context, s *holdem.Session) error {
	b, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.TableID] = b
	return nil
}

// Delete removes the table
func (m *Memory) Delete(_ context.Context, tableID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, tableID)
	delete(m.stacks, tableID)
	return nil
}

// LoadStacks returns the stacks at the table
func (m *Memory) LoadStacks(_ context.Context, tableID string) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stacks := make(map[string]int, len(m.stacks[tableID]))
	for id, stack := range m.stacks[tableID] {
		stacks[id] = stack
	}

	return stacks, nil
}

// SaveStacks replaces the stacks at the table
func (m *Memory) SaveStacks(_ context.Context, tableID string, stacks map[string]int) error {
	c := make(map[string]int, len(stacks))
	for id, stack := range stacks {
		c[id] = stack
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stacks[tableID] = c
	return nil
}
