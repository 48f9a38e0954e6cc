package registry

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// sqliteMaxParams stays below SQLite's default host-parameter limit.
const sqliteMaxParams = 900

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS company_details (
	cnpj_completo     TEXT PRIMARY KEY,
	natureza_juridica TEXT
);
`

// SQLiteLookup reads legal-nature codes from a local snapshot file.
type SQLiteLookup struct {
	db *sql.DB
}

// NewSQLite opens a SQLite snapshot at dsn and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteLookup, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteLookup{db: db}, nil
}

// Migrate creates the snapshot table.
func (s *SQLiteLookup) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLiteLookup) Close() error {
	return s.db.Close()
}

// LegalNatures implements classify.Lookup. Large inputs are split to respect
// SQLite's parameter limit.
func (s *SQLiteLookup) LegalNatures(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for start := 0; start < len(ids); start += sqliteMaxParams {
		chunk := ids[start:min(start+sqliteMaxParams, len(ids))]
		if err := s.lookupChunk(ctx, chunk, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *SQLiteLookup) lookupChunk(ctx context.Context, ids []string, out map[string]string) error {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT cnpj_completo, natureza_juridica FROM company_details WHERE cnpj_completo IN (` +
		strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",") + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return eris.Wrap(err, "sqlite: query company_details")
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var nature sql.NullString
		if err := rows.Scan(&id, &nature); err != nil {
			return eris.Wrap(err, "sqlite: scan company_details")
		}
		if nature.Valid && nature.String != "" {
			out[id] = nature.String
		}
	}
	return eris.Wrap(rows.Err(), "sqlite: iterate company_details")
}

// Import upserts entries in a single transaction and returns the number written.
func (s *SQLiteLookup) Import(ctx context.Context, entries []Entry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}
	return s.load(ctx, entries, false)
}

// Replace empties the snapshot and imports entries in the same transaction.
func (s *SQLiteLookup) Replace(ctx context.Context, entries []Entry) (int64, error) {
	if len(entries) == 0 {
		return 0, ErrEmptyReplace
	}
	return s.load(ctx, entries, true)
}

func (s *SQLiteLookup) load(ctx context.Context, entries []Entry, wipe bool) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback() //nolint:errcheck

	if wipe {
		if _, err := tx.ExecContext(ctx, `DELETE FROM company_details`); err != nil {
			return 0, eris.Wrap(err, "sqlite: clear company_details")
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO company_details (cnpj_completo, natureza_juridica) VALUES (?, ?)
		ON CONFLICT(cnpj_completo) DO UPDATE SET natureza_juridica = excluded.natureza_juridica`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.CNPJ, e.Nature); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import %s", e.CNPJ)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return n, nil
}
