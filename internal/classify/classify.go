// Package classify tags companies as governmental or private from their
// registry legal-nature code and a fixed exception list.
package classify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// DefaultBatchSize bounds how many identifiers go into one lookup call.
const DefaultBatchSize = 1000

// Lookup resolves normalized identifiers to registry legal-nature codes.
// Identifiers without a registry row are simply absent from the result.
type Lookup interface {
	LegalNatures(ctx context.Context, ids []string) (map[string]string, error)
}

// Rules are the static classification tables.
type Rules struct {
	// GovCodes are legal-nature codes that denote public administration.
	GovCodes map[int]struct{}
	// Exceptions are identifiers that are always governmental.
	Exceptions map[string]struct{}
}

// Tag applies the rules to one identifier and its legal-nature code
// (empty when the registry had no row).
func (r Rules) Tag(id, nature string) model.Tag {
	if _, ok := r.Exceptions[id]; ok {
		return model.TagGovernment
	}
	if code, ok := numericCode(nature); ok {
		if _, gov := r.GovCodes[code]; gov {
			return model.TagGovernment
		}
	}
	return model.TagPrivate
}

func numericCode(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ErrLookup is matched by every LookupError.
var ErrLookup = eris.New("legal-nature lookup failed")

// LookupError reports a failed lookup batch. Classification results are
// discarded when it occurs.
type LookupError struct {
	Batch int
	Size  int
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("classify: lookup batch %d (%d ids): %v", e.Batch, e.Size, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *LookupError) Unwrap() []error {
	return []error{ErrLookup, e.Err}
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBatchSize overrides DefaultBatchSize. Non-positive values are ignored.
func WithBatchSize(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithRateLimit throttles lookup calls to perSecond batches per second.
// Zero or negative disables throttling.
func WithRateLimit(perSecond float64) Option {
	return func(r *Resolver) {
		if perSecond > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		} else {
			r.limiter = nil
		}
	}
}

// Resolver classifies identifiers through a Lookup.
type Resolver struct {
	lookup    Lookup
	rules     Rules
	batchSize int
	limiter   *rate.Limiter
}

// New creates a Resolver.
func New(lookup Lookup, rules Rules, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:    lookup,
		rules:     rules,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classification is the outcome of classifying a set of identifiers.
type Classification struct {
	Tags    map[string]model.Tag
	Natures map[string]string
}

// Classify queries every distinct identifier exactly once, in batches with at
// most one call outstanding, and tags each of them. Any lookup failure aborts
// the whole classification with a *LookupError.
func (r *Resolver) Classify(ctx context.Context, ids []string) (*Classification, error) {
	distinct := dedupe(ids)
	natures := make(map[string]string, len(distinct))

	batches := 0
	for start := 0; start < len(distinct); start += r.batchSize {
		end := min(start+r.batchSize, len(distinct))
		batch := distinct[start:end]
		batches++

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, &LookupError{Batch: batches, Size: len(batch), Err: err}
			}
		}

		got, err := r.lookup.LegalNatures(ctx, batch)
		if err != nil {
			return nil, &LookupError{Batch: batches, Size: len(batch), Err: err}
		}
		for _, id := range batch {
			if n, ok := got[id]; ok {
				natures[id] = n
			}
		}
	}

	tags := make(map[string]model.Tag, len(distinct))
	gov := 0
	for _, id := range distinct {
		tags[id] = r.rules.Tag(id, natures[id])
		if tags[id] == model.TagGovernment {
			gov++
		}
	}

	zap.L().Debug("classify: complete",
		zap.Int("ids", len(distinct)),
		zap.Int("batches", batches),
		zap.Int("found", len(natures)),
		zap.Int("government", gov),
	)

	return &Classification{Tags: tags, Natures: natures}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
