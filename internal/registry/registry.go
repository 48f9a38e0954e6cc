// Package registry resolves company identifiers to registry legal-nature codes
// and maintains the company_details snapshot those lookups read from.
package registry

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/reconcile-cli/internal/cnpj"
	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

// Table is the snapshot table both backends query.
const Table = "company_details"

// ErrEmptyReplace is returned when a replace would leave the snapshot empty.
var ErrEmptyReplace = eris.New("registry: replace with no entries")

// Snapshot column names.
const (
	ColCNPJ   = "cnpj_completo"
	ColNature = "natureza_juridica"
)

// Entry is one company row of the snapshot.
type Entry struct {
	CNPJ   string
	Nature string
}

// ParseEntries reads snapshot entries from a decoded table. Identifiers are
// normalized; rows whose identifier is missing are skipped. The header is
// checked once and missing columns are reported as a schema mismatch.
func ParseEntries(t model.Table, cnpjCol, natureCol string) ([]Entry, error) {
	if missing := t.MissingColumns(cnpjCol, natureCol); len(missing) > 0 {
		return nil, &schema.MismatchError{Schema: "registry", Source: t.Source, Missing: missing}
	}

	idx := t.ColumnIndex()
	ci, ni := idx[cnpjCol], idx[natureCol]

	entries := make([]Entry, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := cnpj.Normalize(model.Cell(row, ci))
		if cnpj.IsMissing(id) {
			continue
		}
		entries = append(entries, Entry{CNPJ: id, Nature: model.Cell(row, ni)})
	}
	return entries, nil
}
