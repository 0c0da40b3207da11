package versions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore keeps the version list in the design_versions table. The
// snapshot triple rides in a jsonb column so the row layout never chases the
// widget's state shape.
type PostgresStore struct {
	db dbConn
}

// NewPostgresStore initializes a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("versions: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

func newPostgresStoreWithDB(db dbConn) *PostgresStore {
	if db == nil {
		panic("versions: db required")
	}
	return &PostgresStore{db: db}
}

// List returns the stored versions ordered by version number.
func (s *PostgresStore) List(ctx context.Context) ([]DesignVersion, error) {
	query := `
		SELECT id, version_number, title, note, saved_at, state
		FROM design_versions
		ORDER BY version_number
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("versions: select failed: %w", err)
	}
	defer rows.Close()

	var entries []DesignVersion
	for rows.Next() {
		var (
			entry    DesignVersion
			stateRaw []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.VersionNumber,
			&entry.Title,
			&entry.Note,
			&entry.SavedAt,
			&stateRaw,
		); err != nil {
			return nil, fmt.Errorf("versions: scan failed: %w", err)
		}
		if err := json.Unmarshal(stateRaw, &entry.State); err != nil {
			return nil, fmt.Errorf("versions: decode state: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("versions: iterate rows: %w", err)
	}
	return entries, nil
}

// Replace rewrites the table inside one transaction so readers never see a
// partially written list.
func (s *PostgresStore) Replace(ctx context.Context, entries []DesignVersion) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("versions: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM design_versions`); err != nil {
		return fmt.Errorf("versions: clear table: %w", err)
	}

	insert := `
		INSERT INTO design_versions (id, version_number, title, note, saved_at, state)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, entry := range entries {
		stateRaw, err := json.Marshal(entry.State)
		if err != nil {
			return fmt.Errorf("versions: encode state: %w", err)
		}
		if _, err := tx.Exec(ctx, insert,
			entry.ID,
			entry.VersionNumber,
			entry.Title,
			entry.Note,
			entry.SavedAt,
			stateRaw,
		); err != nil {
			return fmt.Errorf("versions: insert failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("versions: commit tx: %w", err)
	}
	return nil
}
