package reconcile

import (
	"strings"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// Result partitions a period's records against a prior snapshot.
type Result struct {
	// Existing holds windowed records whose company already appears in the reference set.
	Existing []model.Record
	// New holds windowed records of companies absent from the reference set.
	New []model.Record
	// UnclassifiedBaseline holds every record of the full current dataset that
	// is not, by composite key, one of the New records.
	UnclassifiedBaseline []model.Record
}

// CompositeKey joins every canonical field of r in the order
// line_id, entity_id, status_date, status, entity_name. An absent date renders empty.
func CompositeKey(r model.Record) string {
	return strings.Join([]string{r.LineID, r.EntityID, r.StatusDate.String(), r.Status, r.EntityName}, "|")
}

// IDSet returns the set of entity identifiers present in records.
func IDSet(records []model.Record) map[string]struct{} {
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.EntityID] = struct{}{}
	}
	return ids
}

// Diff splits window into Existing and New by identifier membership in refIDs,
// then derives UnclassifiedBaseline from full. Output order follows the inputs.
//
// The baseline is computed over full, not window: New is windowed but the
// baseline subtracts it from the whole dataset, so it also carries every
// out-of-window and Existing record. This mirrors the reports already in use
// and is kept until the billing side confirms whether a true complement is wanted.
func Diff(full, window []model.Record, refIDs map[string]struct{}) Result {
	var res Result
	for _, r := range window {
		if _, ok := refIDs[r.EntityID]; ok {
			res.Existing = append(res.Existing, r)
		} else {
			res.New = append(res.New, r)
		}
	}

	newKeys := make(map[string]struct{}, len(res.New))
	for _, r := range res.New {
		newKeys[CompositeKey(r)] = struct{}{}
	}

	for _, r := range full {
		if _, ok := newKeys[CompositeKey(r)]; ok {
			continue
		}
		res.UnclassifiedBaseline = append(res.UnclassifiedBaseline, r)
	}
	return res
}
