package store

import (
	"database/sql"
	"fmt"
	"sort"
	"time"
)

// Migration is one schema step of the state file.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// MigrationStatus reports the applied and available schema versions.
type MigrationStatus struct {
	CurrentVersion   int             `json:"current_version" yaml:"current_version"`
	AvailableVersion int             `json:"available_version" yaml:"available_version"`
	Pending          []MigrationInfo `json:"pending" yaml:"pending"`
}

type MigrationInfo struct {
	Version     int    `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
}

// migrations must stay ordered by ascending version.
var migrations = []Migration{
	{
		Version:     1,
		Description: "client key/value storage",
		SQL: `
CREATE TABLE IF NOT EXISTS client_kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "index client keys by update time",
		SQL: `
CREATE INDEX IF NOT EXISTS idx_client_kv_updated_at ON client_kv(updated_at DESC);
`,
	},
}

// appliedVersion returns the highest recorded version, creating the
// bookkeeping table on first use.
func appliedVersion(db *sql.DB) (int, error) {
	const bookkeeping = `CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  applied_at TEXT NOT NULL
)`
	if _, err := db.Exec(bookkeeping); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	var version int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func pendingAfter(version int) []Migration {
	idx := sort.Search(len(migrations), func(i int) bool {
		return migrations[i].Version > version
	})
	return migrations[idx:]
}

// runMigrations applies every pending step in a single transaction, so a
// failing step leaves the file at its previous version.
func runMigrations(db *sql.DB) error {
	current, err := appliedVersion(db)
	if err != nil {
		return err
	}
	steps := pendingAfter(current)
	if len(steps) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migrations: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	appliedAt := time.Now().UTC().Format(time.RFC3339)
	for _, m := range steps {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`, m.Version, appliedAt); err != nil {
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
	}
	return tx.Commit()
}

// MigrationPlan reports the schema state of db without migrating it.
func MigrationPlan(db *sql.DB) (*MigrationStatus, error) {
	current, err := appliedVersion(db)
	if err != nil {
		return nil, err
	}

	status := &MigrationStatus{CurrentVersion: current, Pending: []MigrationInfo{}}
	if n := len(migrations); n > 0 {
		status.AvailableVersion = migrations[n-1].Version
	}
	for _, m := range pendingAfter(current) {
		status.Pending = append(status.Pending, MigrationInfo{Version: m.Version, Description: m.Description})
	}
	return status, nil
}
