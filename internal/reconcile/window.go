package reconcile

import "github.com/sells-group/reconcile-cli/internal/model"

// Window is the half-open date interval [Start, End).
type Window struct {
	Start model.Date
	End   model.Date
}

// PreviousMonth returns the calendar month preceding ref's month:
// 2026-02-10 -> [2026-01-01, 2026-02-01), 2026-01-15 -> [2025-12-01, 2026-01-01).
func PreviousMonth(ref model.Date) Window {
	end := ref.FirstOfMonth()
	return Window{Start: end.AddMonths(-1), End: end}
}

// Contains reports whether d is present and Start <= d < End.
func (w Window) Contains(d model.Date) bool {
	if !d.Valid() {
		return false
	}
	return !d.Before(w.Start) && d.Before(w.End)
}

// String renders the window as [start, end).
func (w Window) String() string {
	return "[" + w.Start.String() + ", " + w.End.String() + ")"
}

// FilterWindow keeps the records whose status date falls inside w, in order.
// Records with an absent date are dropped without being reported; callers that
// want to surface the loss use CountAbsentDates.
func FilterWindow(records []model.Record, w Window) []model.Record {
	var out []model.Record
	for _, r := range records {
		if w.Contains(r.StatusDate) {
			out = append(out, r)
		}
	}
	return out
}

// CountAbsentDates counts records without a usable status date.
func CountAbsentDates(records []model.Record) int {
	n := 0
	for _, r := range records {
		if !r.StatusDate.Valid() {
			n++
		}
	}
	return n
}
