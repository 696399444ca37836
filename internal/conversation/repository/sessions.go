// Package repository persists conversation sessions in PostgreSQL. Each
// session is one JSONB row keyed by sender identity; every write replaces the
// whole blob.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cerrajeria_backend/internal/conversation/domain"
)

// Sessions implements the conversation session store.
type Sessions struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Sessions {
	return &Sessions{pool: pool}
}

// Get loads the session for a sender. A missing row yields a freshly
// initialized session, never an error. A row whose blob cannot be decoded is
// also treated as fresh; the engine's fail-safe reset covers the rest.
func (r *Sessions) Get(ctx context.Context, senderID string) (domain.Session, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT session_data FROM wa_sessions WHERE sender_id = $1`,
		senderID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewSession(), nil
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.NewSession(), nil
	}
	return sess, nil
}

// Save upserts the full session blob for a sender. Last writer wins.
func (r *Sessions) Save(ctx context.Context, senderID string, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO wa_sessions (sender_id, session_data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (sender_id) DO UPDATE SET
		     session_data = EXCLUDED.session_data,
		     updated_at = EXCLUDED.updated_at`,
		senderID, data,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the session for a sender. Deleting an absent session is not
// an error.
func (r *Sessions) Delete(ctx context.Context, senderID string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wa_sessions WHERE sender_id = $1`,
		senderID,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
