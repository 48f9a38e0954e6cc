package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// delimiterCandidates are tried in order; earlier entries win ties.
var delimiterCandidates = []rune{';', ',', '\t', '|'}

// CSVOptions configures the streaming CSV parser.
type CSVOptions struct {
	Delimiter  rune // default ','
	LazyQuotes bool
	TrimSpace  bool
}

// StreamCSV reads CSV records from r and sends them to a channel.
// Caller must consume the returned row channel. Errors are sent on the error channel.
// Both channels are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1 // allow variable fields

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if opts.TrimSpace {
				for i, field := range record {
					record[i] = strings.TrimSpace(field)
				}
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadCSV collects a whole CSV stream into a table; the first record is the header.
// Blank lines are skipped by the CSV reader.
func ReadCSV(ctx context.Context, r io.Reader, delimiter rune) (model.Table, error) {
	rowCh, errCh := StreamCSV(ctx, r, CSVOptions{Delimiter: delimiter, LazyQuotes: true})

	var t model.Table
	first := true
	for row := range rowCh {
		if first {
			t.Header = row
			first = false
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	for err := range errCh {
		if err != nil {
			return model.Table{}, err
		}
	}
	if first {
		return model.Table{}, eris.New("csv: no header row")
	}
	return t, nil
}

// SniffDelimiter picks the candidate delimiter occurring most often outside
// quotes in the header line. It falls back to ','.
func SniffDelimiter(headerLine string) rune {
	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, c := range headerLine {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}

	best, bestN := ',', 0
	for _, d := range delimiterCandidates {
		if counts[d] > bestN {
			best, bestN = d, counts[d]
		}
	}
	return best
}

// firstLine returns text up to the first line break.
func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(line, "\r")
}
