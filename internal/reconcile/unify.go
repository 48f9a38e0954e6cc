// Package reconcile unifies canonical records, scopes them to monthly windows
// and partitions them against a prior snapshot.
package reconcile

import "github.com/sells-group/reconcile-cli/internal/model"

// Unify concatenates the record sets in the order given and removes exact
// duplicates, keeping the first occurrence. Equality covers every canonical
// field; two absent dates are equal.
func Unify(sets ...[]model.Record) []model.Record {
	total := 0
	for _, s := range sets {
		total += len(s)
	}

	seen := make(map[model.Record]struct{}, total)
	out := make([]model.Record, 0, total)
	for _, s := range sets {
		for _, r := range s {
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
