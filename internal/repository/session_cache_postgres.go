package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/designdesk/session-gateway/internal/sessionstore"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionCachePostgres is the shared-deployment session cache backend. One row
// per (session, key), values stored as JSONB.
type SessionCachePostgres struct {
	db *pgxpool.Pool
}

func NewSessionCachePostgres(db *pgxpool.Pool) *SessionCachePostgres {
	return &SessionCachePostgres{db: db}
}

var _ sessionstore.Store = (*SessionCachePostgres)(nil)

func (r *SessionCachePostgres) Load(ctx context.Context, sessionID string) (map[string]json.RawMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT key, value FROM session_cache WHERE session_id = $1`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query session cache: %w", err)
	}
	defer rows.Close()

	values := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan session cache row: %w", err)
		}
		values[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session cache rows: %w", err)
	}

	return values, nil
}

func (r *SessionCachePostgres) Save(ctx context.Context, sessionID string, values map[string]json.RawMessage) error {
	if len(values) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for key, raw := range values {
		batch.Queue(
			`INSERT INTO session_cache (session_id, key, value, updated_at)
			 VALUES ($1, $2, $3, now())
			 ON CONFLICT (session_id, key)
			 DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			sessionID, key, []byte(raw),
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range values {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert session cache value: %w", err)
		}
	}

	return nil
}

func (r *SessionCachePostgres) Clear(ctx context.Context, sessionID string) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM session_cache WHERE session_id = $1`,
		sessionID,
	); err != nil {
		return fmt.Errorf("clear session cache: %w", err)
	}
	return nil
}
