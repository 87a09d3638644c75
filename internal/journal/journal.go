package journal

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"pmconsole/internal/api"
	"pmconsole/internal/view"
)

// schemaDDL holds the journal schema.
//
//go:embed schema.sql
var schemaDDL string

// Entry is one recorded snapshot.
type Entry struct {
	ID              string
	ProjectID       string
	FetchedAt       time.Time
	Progress        float64
	CompletedStages int
	TotalTasks      int
	Fingerprint     string
}

// Journal records project snapshots in a DuckDB file. Consecutive
// identical snapshots of a project are stored once.
type Journal struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// Open opens or creates the journal at path. An empty path opens an
// in-memory journal.
func Open(ctx context.Context, path string) (*Journal, error) {
	if ctx == nil {
		return nil, errors.New("journal: context is nil")
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &Journal{db: db, now: time.Now, newID: uuid.NewString}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record stores snap unless it matches the project's latest entry.
func (j *Journal) Record(ctx context.Context, projectID string, snap api.ProjectSnapshot) error {
	if projectID == "" {
		return errors.New("journal: project id is required")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	fingerprint := fingerprintBytes(payload)

	var latest string
	err = j.db.QueryRowContext(ctx,
		`SELECT fingerprint FROM project_snapshots WHERE project_id = ? ORDER BY fetched_at DESC LIMIT 1`,
		projectID).Scan(&latest)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("read latest snapshot: %w", err)
	case latest == fingerprint:
		return nil
	}

	v := view.Build(projectID, snap)
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO project_snapshots (snapshot_id, project_id, fetched_at, progress, completed_stages, total_tasks, fingerprint, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.newID(), projectID, j.now().UTC(), snap.Progress, v.CompletedStages, v.TotalTasks, fingerprint, string(payload))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// History returns up to limit entries for a project, newest first.
// A limit of zero or less returns every entry.
func (j *Journal) History(ctx context.Context, projectID string, limit int) ([]Entry, error) {
	query := `SELECT snapshot_id, project_id, fetched_at, progress, completed_stages, total_tasks, fingerprint
		FROM project_snapshots WHERE project_id = ? ORDER BY fetched_at DESC`
	args := []any{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.FetchedAt, &e.Progress, &e.CompletedStages, &e.TotalTasks, &e.Fingerprint); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func fingerprintBytes(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
