// Package store persists hand sessions and the stacks carried between hands
package store

import (
	"context"
	"encoding/json"
	"errors"

	"holdem-server/pkg/holdem"
)

// ErrNotFound is returned when a table has no saved session
var ErrNotFound = errors.New("table not found")

// Store loads and saves hand sessions by table
type Store interface {
	// Load returns the session at the table, or ErrNotFound
	Load(ctx context.Context, tableID string) (*holdem.Session, error)
	// Save replaces the session at the table
	Save(ctx context.Context, s *holdem.Session) error
	// Delete removes the session and the stacks at the table
	Delete(ctx context.Context, tableID string) error
	// LoadStacks returns the stacks carried over at the table. It is empty if none were saved.
	LoadStacks(ctx context.Context, tableID string) (map[string]int, error)
	// SaveStacks replaces the stacks carried over at the table
	SaveStacks(ctx context.Context, tableID string, stacks map[string]int) error
}

func encode(s *holdem.Session) ([]byte, error) {
	if s == nil || s.TableID == "" {
		return nil, errors.New("session must have a table id")
	}

	return json.Marshal(s)
}

func decode(b []byte) (*holdem.Session, error) {
	var s holdem.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
