package classify

import "context"

// Static is an in-memory Lookup.
type Static map[string]string

// LegalNatures implements Lookup.
func (s Static) LegalNatures(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if n, ok := s[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}
