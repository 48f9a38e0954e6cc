package model

// Canonical output column names, in output order.
const (
	ColLineID     = "line_id"
	ColEntityID   = "entity_id"
	ColEntityName = "entity_name"
	ColStatusDate = "status_date"
	ColStatus     = "status"
)

// Columns is the ordered canonical column set exposed to reporting layers.
var Columns = []string{ColLineID, ColEntityID, ColEntityName, ColStatusDate, ColStatus}

// Record is one service/contract line after schema normalization.
// Records are values: they are created once by the schema mapper and never
// mutated afterwards, so they can be used directly as map keys.
type Record struct {
	LineID     string `json:"line_id" csv:"line_id"`
	EntityID   string `json:"entity_id" csv:"entity_id"`
	EntityName string `json:"entity_name" csv:"entity_name"`
	StatusDate Date   `json:"status_date" csv:"status_date"`
	Status     string `json:"status" csv:"status"`
}

// Values returns the record's fields in canonical column order.
func (r Record) Values() []string {
	return []string{r.LineID, r.EntityID, r.EntityName, r.StatusDate.String(), r.Status}
}

// EntityIDs returns the distinct entity identifiers of records in first-seen order.
func EntityIDs(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	var ids []string
	for _, r := range records {
		if _, ok := seen[r.EntityID]; ok {
			continue
		}
		seen[r.EntityID] = struct{}{}
		ids = append(ids, r.EntityID)
	}
	return ids
}
