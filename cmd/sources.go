package main

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/cnpj"
	"github.com/sells-group/reconcile-cli/internal/export"
	"github.com/sells-group/reconcile-cli/internal/ingest"
	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

// ingestOptions builds decoding options from config.
func ingestOptions() ingest.Options {
	return ingest.Options{SampleBytes: cfg.Ingest.SampleBytes}
}

// sheetOptions picks an .xlsx worksheet by zero-based index when sheet is
// numeric and by name otherwise. Empty selects the first sheet.
func sheetOptions(sheet string) ingest.XLSXOptions {
	if sheet == "" {
		return ingest.XLSXOptions{}
	}
	if i, err := strconv.Atoi(sheet); err == nil {
		return ingest.XLSXOptions{SheetIndex: i}
	}
	return ingest.XLSXOptions{SheetName: sheet}
}

// readRecords decodes path and maps it through the named schema.
func readRecords(ctx context.Context, path, schemaName string) ([]model.Record, error) {
	s, err := tables.Schema(schemaName)
	if err != nil {
		return nil, err
	}

	t, err := ingest.ReadFile(ctx, path, ingestOptions())
	if err != nil {
		return nil, err
	}

	records, err := schema.Map(t, s)
	if err != nil {
		return nil, eris.Wrapf(err, "map %s", path)
	}

	missing, overlength := 0, 0
	for _, r := range records {
		switch {
		case cnpj.IsMissing(r.EntityID):
			missing++
		case cnpj.IsOverlength(r.EntityID):
			overlength++
		}
	}

	log := zap.L().With(zap.String("file", path), zap.String("schema", s.Name))
	if missing > 0 || overlength > 0 {
		log.Warn("source has unusable identifiers",
			zap.Int("missing", missing),
			zap.Int("overlength", overlength),
		)
	}
	log.Info("source loaded", zap.Int("records", len(records)))
	return records, nil
}

// writeRecordsCSV writes records as canonical CSV to path.
func writeRecordsCSV(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := export.WriteCSV(f, records); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrapf(err, "write %s", path)
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

// outputPath joins dir and name, creating dir when needed.
func outputPath(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "create output dir %s", dir)
	}
	return filepath.Join(dir, name), nil
}
