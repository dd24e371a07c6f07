package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"holdem-server/pkg/db"
	"holdem-server/pkg/holdem"
)

// SQL keeps sessions in postgres or sqlite
type SQL struct {
	db *db.DB
}

// NewSQL returns a store backed by the database
// The migrations must already have been run.
func NewSQL(d *db.DB) *SQL {
	return &SQL{db: d}
}

var _ Store = (*SQL)(nil)

// Load returns the session at the table
func (s *SQL) Load(ctx context.Context, tableID string) (*holdem.Session, error) {
	const query = `
SELECT session
FROM hand_sessions
WHERE table_id = ?`

	var b []byte
	row := s.db.QueryRowContext(ctx, s.db.Rebind(query), tableID)
	if err := row.Scan(&b); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return decode(b)
}

// Save replaces the session at the table
func (s *SQL) Save(ctx context.Context, session *holdem.Session) error {
	b, err := encode(session)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO hand_sessions (table_id, hand_id, seq, session)
VALUES (?, ?, ?, ?)
ON CONFLICT (table_id) DO UPDATE
SET hand_id = excluded.hand_id,
    seq = excluded.seq,
    session = excluded.session,
    updated = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), session.TableID, session.HandID, session.Seq, string(b)); err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}

	return nil
}

// Delete removes the table
func (s *SQL) Delete(ctx context.Context, tableID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM hand_sessions WHERE table_id = ?`), tableID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM table_stacks WHERE table_id = ?`), tableID)
		return err
	})
}

// LoadStacks returns the stacks at the table
func (s *SQL) LoadStacks(ctx context.Context, tableID string) (map[string]int, error) {
	const query = `
SELECT participant_id, stack
FROM table_stacks
WHERE table_id = ?`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stacks := make(map[string]int)
	for rows.Next() {
		id, stack, err := scanStack(rows)
		if err != nil {
			return nil, err
		}

		stacks[id] = stack
	}

	return stacks, rows.Err()
}

// SaveStacks replaces the stacks at the table
func (s *SQL) SaveStacks(ctx context.Context, tableID string, stacks map[string]int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM table_stacks WHERE table_id = ?`), tableID); err != nil {
			return err
		}

		const query = `
INSERT INTO table_stacks (table_id, participant_id, stack)
VALUES (?, ?, ?)`

		for id, stack := range stacks {
			if _, err := tx.ExecContext(ctx, s.db.Rebind(query), tableID, id, stack); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *SQL) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func scanStack(row db.Scanner) (string, int, error) {
	var id string
	var stack int
	if err := row.Scan(&id, &stack); err != nil {
		return "", 0, err
	}

	return id, stack, nil
}
