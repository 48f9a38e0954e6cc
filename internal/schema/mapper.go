package schema

import (
	"github.com/sells-group/reconcile-cli/internal/cnpj"
	"github.com/sells-group/reconcile-cli/internal/dates"
	"github.com/sells-group/reconcile-cli/internal/model"
)

// Map converts every row of t into a canonical record using s.
// The header is validated once before any row is read; missing columns yield a
// *MismatchError naming all of them. Individual malformed values never fail:
// bad dates become absent and bad identifiers become cnpj.Missing.
func Map(t model.Table, s Schema) ([]model.Record, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if missing := t.MissingColumns(s.Required()...); len(missing) > 0 {
		return nil, &MismatchError{Schema: s.Name, Source: t.Source, Missing: missing}
	}

	idx := t.ColumnIndex()
	lineCol := idx[s.LineID]
	entityCol := idx[s.EntityID]
	nameCol := idx[s.EntityName]
	dateCol := idx[s.Date.Column]
	statusCol := idx[s.Status]

	records := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, model.Record{
			LineID:     model.Cell(row, lineCol),
			EntityID:   cnpj.Normalize(model.Cell(row, entityCol)),
			EntityName: model.Cell(row, nameCol),
			StatusDate: parseDate(model.Cell(row, dateCol), s.Date.Format),
			Status:     model.Cell(row, statusCol),
		})
	}
	return records, nil
}

func parseDate(raw string, format DateFormat) model.Date {
	switch format {
	case EventHistory:
		return dates.ParseFirstEventDate(raw)
	case DayFirst:
		return dates.Parse(raw, true)
	default:
		return dates.Parse(raw, false)
	}
}
