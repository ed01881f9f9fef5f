package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// connPragmas are applied by the driver to every new connection.
var connPragmas = []string{
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"busy_timeout(5000)",
}

var errNoPath = errors.New("state path is required")

// Store keeps client identity and preferences in a local SQLite file. Task
// data never lives here.
type Store struct {
	db *sql.DB
}

// Open opens the state file at path, creating it and its directory when
// missing, and applies pending migrations.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errNoPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", stateDSN(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// MigrationPlan reports applied and pending schema versions.
func (s *Store) MigrationPlan() (*MigrationStatus, error) {
	return MigrationPlan(s.db)
}

// Inspect reports the migration plan of the state file at path without
// migrating it. A missing file is not created; every migration is pending.
func Inspect(path string) (*MigrationStatus, error) {
	if path == "" {
		return nil, errNoPath
	}

	dsn := ":memory:"
	_, err := os.Stat(path)
	switch {
	case err == nil:
		dsn = stateDSN(path)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return MigrationPlan(db)
}

func stateDSN(path string) string {
	query := url.Values{}
	for _, pragma := range connPragmas {
		query.Add("_pragma", pragma)
	}
	u := url.URL{Scheme: "file", Path: path, RawQuery: query.Encode()}
	return u.String()
}
