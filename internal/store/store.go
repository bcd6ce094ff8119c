// Package store mirrors project memory (scan/fix history) to Postgres when
// DATABASE_URL is configured, following the teacher's own connect-or-fall-
// back-to-nil pattern: a nil *Store is a valid, inert value, so callers
// never need a feature flag to skip persistence when the database is
// absent or unreachable.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/lib/pq"

	"github.com/complior/engine/internal/logger"
	"github.com/complior/engine/internal/models"
)

// Store persists project memory to Postgres. A nil *Store is valid and
// every method on it is a no-op, so callers can hold one unconditionally.
type Store struct {
	db  *sql.DB
	log logger.Interface
}

// Connect opens a connection and verifies it with a ping. If databaseURL
// is empty or the ping fails, it returns (nil, nil) — absence of the store
// is not an error, per the engine's degrade-to-file-only failure
// semantics; the caller logs and moves on.
func Connect(ctx context.Context, databaseURL string, log logger.Interface) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Warn("failed to open postgres connection, falling back to file-only memory")
		return nil, nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Warn("postgres ping failed, falling back to file-only memory")
		db.Close()
		return nil, nil
	}
	s := &Store{db: db, log: log.WithComponent("store")}
	if err := s.migrate(ctx); err != nil {
		log.Warn("postgres migration failed, falling back to file-only memory")
		db.Close()
		return nil, nil
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scan_history (
			id SERIAL PRIMARY KEY,
			project_path TEXT NOT NULL,
			scanned_at TIMESTAMPTZ NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			zone TEXT NOT NULL,
			payload JSONB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fix_history (
			id SERIAL PRIMARY KEY,
			project_path TEXT NOT NULL,
			check_id TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL,
			payload JSONB NOT NULL
		);
	`)
	return err
}

// Close releases the underlying connection pool. Safe to call on a nil
// *Store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RecordScan appends a scan to scan_history. No-op on a nil *Store.
func (s *Store) RecordScan(ctx context.Context, projectPath string, result models.ScanResult) {
	if s == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scan_history (project_path, scanned_at, score, zone, payload) VALUES ($1, $2, $3, $4, $5)`,
		projectPath, result.ScannedAt, result.Score.TotalScore, result.Score.Zone, payload)
	if err != nil {
		s.log.Warn("failed to record scan history")
	}
}

// RecordFix appends a fix application to fix_history. No-op on a nil
// *Store.
func (s *Store) RecordFix(ctx context.Context, projectPath string, entry models.HistoryEntry) {
	if s == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO fix_history (project_path, check_id, applied_at, payload) VALUES ($1, $2, $3, $4)`,
		projectPath, entry.CheckID, entry.Timestamp, payload)
	if err != nil {
		s.log.Warn("failed to record fix history")
	}
}

// RecentScans returns the last n scans for a project, most recent first.
// Returns (nil, nil) on a nil *Store.
func (s *Store) RecentScans(ctx context.Context, projectPath string, n int) ([]models.ScanResult, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM scan_history WHERE project_path = $1 ORDER BY scanned_at DESC LIMIT $2`,
		projectPath, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ScanResult
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var result models.ScanResult
		if err := json.Unmarshal(raw, &result); err != nil {
			continue
		}
		out = append(out, result)
	}
	return out, rows.Err()
}
