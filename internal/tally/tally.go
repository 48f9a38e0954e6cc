// Package tally counts raw operator export rows by plan and service status.
package tally

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

// Default column names of the operator's monthly export.
const (
	DefaultStatusCol = "status"
	DefaultPlanCol   = "sncode"
	DefaultDateCol   = "data_status"

	// NoPlan labels rows with an empty plan cell.
	NoPlan = "SEM_PLANO"
)

const (
	statusActive    = "ativa"
	statusInactive  = "desativada"
	statusUndefined = "indefinido"
)

var (
	activeStatuses   = []string{"ativo", "ativa", "active", "ativada"}
	inactiveStatuses = []string{"inativo", "inativa", "inactive", "desativado", "desativada", "desativa", "desativada(o)"}
)

// NormalizeStatus folds the common spellings of active and inactive into
// "ativa" and "desativada". Other values are lowercased; blank is "indefinido".
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return statusUndefined
	case slices.Contains(activeStatuses, s):
		return statusActive
	case slices.Contains(inactiveStatuses, s):
		return statusInactive
	}
	return s
}

// Month selects one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Month{}, eris.Wrapf(err, "tally: parse month %q", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Options name the columns to count and an optional month filter.
type Options struct {
	StatusCol string
	PlanCol   string
	DateCol   string
	// Month, when set, keeps only rows whose date falls in that month.
	Month *Month
}

func (o Options) withDefaults() Options {
	if o.StatusCol == "" {
		o.StatusCol = DefaultStatusCol
	}
	if o.PlanCol == "" {
		o.PlanCol = DefaultPlanCol
	}
	if o.DateCol == "" {
		o.DateCol = DefaultDateCol
	}
	return o
}

// Summary holds the counts of one tally run.
type Summary struct {
	Total        int
	ByPlan       map[string]int
	ByPlanStatus map[string]map[string]int
	ByStatus     map[string]int
	// Skipped counts rows dropped by the month filter for an unparseable date.
	Skipped int
}

// Count tallies the rows of t. Rows outside opts.Month, or whose date cannot
// be parsed as day/month/year while a month filter is active, are not counted.
func Count(t model.Table, opts Options) (*Summary, error) {
	opts = opts.withDefaults()

	required := []string{opts.StatusCol, opts.PlanCol}
	if opts.Month != nil {
		required = append(required, opts.DateCol)
	}
	if missing := t.MissingColumns(required...); len(missing) > 0 {
		return nil, &schema.MismatchError{Schema: "tally", Source: t.Source, Missing: missing}
	}

	idx := t.ColumnIndex()
	statusIdx, planIdx, dateIdx := idx[opts.StatusCol], idx[opts.PlanCol], idx[opts.DateCol]

	s := &Summary{
		ByPlan:       make(map[string]int),
		ByPlanStatus: make(map[string]map[string]int),
		ByStatus:     make(map[string]int),
	}

	for _, row := range t.Rows {
		if opts.Month != nil {
			d, err := time.Parse("2/1/2006", model.Cell(row, dateIdx))
			if err != nil {
				s.Skipped++
				continue
			}
			if d.Year() != opts.Month.Year || d.Month() != opts.Month.Month {
				continue
			}
		}

		plan := model.Cell(row, planIdx)
		if plan == "" {
			plan = NoPlan
		}
		status := NormalizeStatus(model.Cell(row, statusIdx))

		s.Total++
		s.ByPlan[plan]++
		s.ByStatus[status]++
		if s.ByPlanStatus[plan] == nil {
			s.ByPlanStatus[plan] = make(map[string]int)
		}
		s.ByPlanStatus[plan][status]++
	}

	return s, nil
}

// Entry is one key and its count.
type Entry struct {
	Key   string
	Count int
}

// SortedPlans returns plan totals ordered by count descending, then plan.
func (s *Summary) SortedPlans() []Entry { return sorted(s.ByPlan) }

// SortedStatuses returns overall status totals in the same order.
func (s *Summary) SortedStatuses() []Entry { return sorted(s.ByStatus) }

// SortedPlanStatuses returns the status totals within plan.
func (s *Summary) SortedPlanStatuses(plan string) []Entry { return sorted(s.ByPlanStatus[plan]) }

func sorted(m map[string]int) []Entry {
	out := make([]Entry, 0, len(m))
	for k, n := range m {
		out = append(out, Entry{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
