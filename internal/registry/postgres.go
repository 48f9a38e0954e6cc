package registry

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reconcile-cli/internal/db"
)

const pgLookupSQL = `SELECT cnpj_completo, COALESCE(natureza_juridica::text, '')
FROM company_details
WHERE cnpj_completo = ANY($1)`

// PostgresLookup reads legal-nature codes from a Postgres company_details table.
type PostgresLookup struct {
	pool db.Pool
}

// NewPostgresLookup creates a PostgresLookup.
func NewPostgresLookup(pool db.Pool) *PostgresLookup {
	return &PostgresLookup{pool: pool}
}

// LegalNatures implements classify.Lookup.
func (l *PostgresLookup) LegalNatures(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := l.pool.Query(ctx, pgLookupSQL, ids)
	if err != nil {
		return nil, eris.Wrap(err, "registry: query company_details")
	}
	defer rows.Close()

	for rows.Next() {
		var id, nature string
		if err := rows.Scan(&id, &nature); err != nil {
			return nil, eris.Wrap(err, "registry: scan company_details")
		}
		if nature != "" {
			out[id] = nature
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "registry: iterate company_details")
	}
	return out, nil
}

// Import upserts entries into company_details.
func (l *PostgresLookup) Import(ctx context.Context, entries []Entry) (int64, error) {
	n, err := db.BulkUpsert(ctx, l.pool, db.UpsertConfig{
		Table:        Table,
		Columns:      []string{ColCNPJ, ColNature},
		ConflictKeys: []string{ColCNPJ},
	}, entryRows(entries))
	if err != nil {
		return 0, eris.Wrap(err, "registry: import")
	}
	return n, nil
}

// Replace truncates company_details and reloads it with COPY in one
// transaction. An empty load is refused so a bad snapshot cannot wipe the table.
func (l *PostgresLookup) Replace(ctx context.Context, entries []Entry) (int64, error) {
	if len(entries) == 0 {
		return 0, ErrEmptyReplace
	}
	n, err := db.ReplaceTable(ctx, l.pool, Table, []string{ColCNPJ, ColNature}, entryRows(entries))
	if err != nil {
		return 0, eris.Wrap(err, "registry: replace")
	}
	return n, nil
}

func entryRows(entries []Entry) [][]any {
	rows := make([][]any, 0, len(entries))
	for _, e := range dedupeEntries(entries) {
		rows = append(rows, []any{e.CNPJ, e.Nature})
	}
	return rows
}

// dedupeEntries keeps the last entry per identifier so a single load never
// carries a conflicting key twice.
func dedupeEntries(entries []Entry) []Entry {
	pos := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := pos[e.CNPJ]; ok {
			out[i] = e
			continue
		}
		pos[e.CNPJ] = len(out)
		out = append(out, e)
	}
	return out
}
