package parsecache

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver, registered as "pgx"
	_ "github.com/lib/pq"              // postgres driver, registered as "postgres"
	_ "github.com/mattn/go-sqlite3"    // sqlite driver, registered as "sqlite3"
)

// SQLStore is a Store backed by database/sql, shared by the SQLite and
// Postgres constructors below. The serve command does not build one: it
// always uses a MemoryStore, whatever cache.backend is set to.
type SQLStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store at path.
func NewSQLiteStore(path string, ttl time.Duration) (*SQLStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return newSQLStore(db, ttl)
}

// NewPostgresStore opens a Postgres-backed store via lib/pq using dsn.
func NewPostgresStore(dsn string, ttl time.Duration) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return newSQLStore(db, ttl)
}

// NewPostgresStorePgx opens a Postgres-backed store via pgx's database/sql
// shim, for deployments that want pgx's connection pooling and type
// handling instead of lib/pq.
func NewPostgresStorePgx(dsn string, ttl time.Duration) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return newSQLStore(db, ttl)
}

func newSQLStore(db *sql.DB, ttl time.Duration) (*SQLStore, error) {
	const schema = `
CREATE TABLE IF NOT EXISTS parse_cache (
	id TEXT PRIMARY KEY,
	cache_key TEXT UNIQUE NOT NULL,
	payload BLOB NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &SQLStore{db: db, ttl: ttl}, nil
}

// GetTokens implements Store.
func (s *SQLStore) GetTokens(ctx context.Context, key string) (interface{}, bool) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM parse_cache WHERE cache_key = ?`, key).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false
		}
		return nil, false
	}
	value, ok := unmarshalItem(payload)
	if !ok {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM parse_cache WHERE cache_key = ?`, key)
	}
	return value, ok
}

// PutTokens implements Store.
func (s *SQLStore) PutTokens(ctx context.Context, key string, value interface{}) error {
	raw, err := marshalItem(value, s.ttl)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO parse_cache (id, cache_key, payload) VALUES (?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload`,
		EntryID(), key, raw)
	return err
}

// Close releases the underlying database handle.
func (s *SQLStore) Close() error { return s.db.Close() }
