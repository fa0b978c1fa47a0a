package site

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository persists topology snapshots so the registry can be primed at
// startup, before the first live siteInfo broadcast arrives. Implementations
// must be safe for concurrent use.
type Repository interface {
	// Save stores or replaces the snapshot of one site.
	Save(ctx context.Context, snap Snapshot) error

	// LoadAll returns every stored snapshot, ordered by site ID.
	LoadAll(ctx context.Context) ([]Snapshot, error)
}

// SQLiteRepository stores snapshots as JSON documents in a single table.
// Snapshots are small (a handful of devices per site) and always read
// wholesale, so a document column beats a normalised schema here.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a snapshot repository on the given database
// and ensures its schema exists.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS site_snapshots (
			site_id    TEXT PRIMARY KEY,
			snapshot   TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating site_snapshots table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Save stores or replaces the snapshot of one site.
func (r *SQLiteRepository) Save(ctx context.Context, snap Snapshot) error {
	if snap.SiteID == "" {
		return errors.New("site: snapshot has no site_id")
	}
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot for %s: %w", snap.SiteID, err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO site_snapshots (site_id, snapshot, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(site_id) DO UPDATE SET
		   snapshot = excluded.snapshot,
		   updated_at = excluded.updated_at`,
		snap.SiteID, string(doc), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot for %s: %w", snap.SiteID, err)
	}
	return nil
}

// LoadAll returns every stored snapshot, ordered by site ID.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT snapshot FROM site_snapshots ORDER BY site_id`)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	var snaps []Snapshot
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		var snap Snapshot
		if err := json.Unmarshal([]byte(doc), &snap); err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snaps, nil
}
