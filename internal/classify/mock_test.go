package classify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockLookup implements Lookup for testing.
type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) LegalNatures(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
