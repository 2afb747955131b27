// Package snapstore caches raw fetched HTML snapshots in SQLite so a
// page can be re-analysed without refetching. Only acquisition-side
// input is stored; analysis results never are. The caller must blank-
// import a driver before opening:
//
//	import _ "modernc.org/sqlite"
//	store, err := snapstore.Open("snapshots.db")
package snapstore

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	html       BLOB NOT NULL,
	html_hash  TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_url ON snapshots(url, fetched_at DESC);
`

// Snapshot is one cached DOM photo. The raw HTML is the immutable asset.
type Snapshot struct {
	ID        string `json:"id"`        // UUIDv7
	URL       string `json:"url"`
	HTML      []byte `json:"html"`      // full serialised DOM
	HTMLHash  string `json:"html_hash"` // SHA-256 hex
	FetchedAt int64  `json:"fetched_at"` // epoch milliseconds
}

// HashHTML returns the canonical SHA-256 hex digest of a snapshot body.
func HashHTML(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

type config struct {
	busyTimeout int
	mkdirAll    bool
}

// Option customises Open behaviour.
type Option func(*config)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) Option { return func(c *config) { c.busyTimeout = ms } }

// WithMkdirAll creates parent directories of the database path before opening.
func WithMkdirAll() Option { return func(c *config) { c.mkdirAll = true } }

// Store is an SQLite-backed snapshot cache.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database with production-safe
// pragmas: foreign_keys ON, WAL journal, synchronous NORMAL.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := config{busyTimeout: 10_000}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("snapstore: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapstore: open: %w", err)
	}

	pragmas := fmt.Sprintf(
		"PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL; PRAGMA busy_timeout = %d; PRAGMA synchronous = NORMAL;",
		cfg.busyTimeout)
	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapstore: pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapstore: schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapstore: ping: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store for testing. MaxOpenConns(1)
// keeps every query on the same in-memory database; Close is registered
// via t.Cleanup.
func OpenMemory(t testing.TB, opts ...Option) *Store {
	t.Helper()
	s, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("snapstore.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

// Put stores a snapshot. Missing ID, hash, and timestamp are filled in.
func (s *Store) Put(ctx context.Context, snap *Snapshot) error {
	if snap.URL == "" {
		return errors.New("snapstore: snapshot url is required")
	}
	if snap.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("snapstore: id: %w", err)
		}
		snap.ID = id.String()
	}
	if snap.HTMLHash == "" {
		snap.HTMLHash = HashHTML(snap.HTML)
	}
	if snap.FetchedAt == 0 {
		snap.FetchedAt = time.Now().UnixMilli()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, url, html, html_hash, fetched_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.URL, snap.HTML, snap.HTMLHash, snap.FetchedAt)
	if err != nil {
		return fmt.Errorf("snapstore: put: %w", err)
	}
	return nil
}

// Latest returns the most recent snapshot for a URL, or nil when the
// URL has never been cached.
func (s *Store) Latest(ctx context.Context, url string) (*Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, html, html_hash, fetched_at FROM snapshots
		 WHERE url = ? ORDER BY fetched_at DESC LIMIT 1`, url)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.URL, &snap.HTML, &snap.HTMLHash, &snap.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapstore: latest: %w", err)
	}
	return &snap, nil
}

// Purge deletes snapshots fetched before the cutoff and reports how
// many were removed.
func (s *Store) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE fetched_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("snapstore: purge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("snapstore: purge count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
