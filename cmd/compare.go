package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/reconcile-cli/internal/export"
	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/reconcile"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

// Output file names of the compare command.
const (
	existingFile           = "empresa_existente.csv"
	newFile                = "empresa_nova.csv"
	baselineFile           = "faturamento_padrao.csv"
	existingClassifiedFile = "empresa_existente_classificado.csv"
	newClassifiedFile      = "empresa_nova_classificado.csv"
)

var (
	compareCurrentPath  string
	comparePreviousPath string
	compareRefDate      string
	compareOutDir       string
	compareXLSXPath     string
	compareClassify     bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Split last month's lines into existing and new customers",
	Long:  "Windows the current canonical snapshot to the month before --ref-date, then splits it by whether the company appears in the previous snapshot.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("ingest"); err != nil {
			return err
		}

		ref := model.DateOf(time.Now())
		if compareRefDate != "" {
			d, err := model.ParseDate(compareRefDate)
			if err != nil {
				return eris.Wrap(err, "compare: parse --ref-date")
			}
			ref = d
		}

		var current, previous []model.Record
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			current, err = readRecords(gctx, compareCurrentPath, schema.Canonical.Name)
			return err
		})
		g.Go(func() error {
			var err error
			previous, err = readRecords(gctx, comparePreviousPath, schema.Canonical.Name)
			return err
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "compare: load snapshots")
		}

		window := reconcile.PreviousMonth(ref)
		windowed := reconcile.FilterWindow(current, window)
		res := reconcile.Diff(current, windowed, reconcile.IDSet(previous))

		zap.L().Info("compare: diff complete",
			zap.Stringer("window", window),
			zap.Int("current", len(current)),
			zap.Int("absent_dates", reconcile.CountAbsentDates(current)),
			zap.Int("windowed", len(windowed)),
			zap.Int("existing", len(res.Existing)),
			zap.Int("new", len(res.New)),
			zap.Int("baseline", len(res.UnclassifiedBaseline)),
		)

		if err := writeDiff(res); err != nil {
			return err
		}

		if compareClassify {
			return classifyDiff(ctx, res)
		}
		return nil
	},
}

func writeDiff(res reconcile.Result) error {
	outputs := []struct {
		name    string
		records []model.Record
	}{
		{existingFile, res.Existing},
		{newFile, res.New},
		{baselineFile, res.UnclassifiedBaseline},
	}
	for _, o := range outputs {
		path, err := outputPath(compareOutDir, o.name)
		if err != nil {
			return err
		}
		if err := writeRecordsCSV(path, o.records); err != nil {
			return eris.Wrap(err, "compare")
		}
	}

	if compareXLSXPath != "" {
		err := export.WriteXLSX(compareXLSXPath, []export.Sheet{
			{Name: "existing", Records: res.Existing},
			{Name: "new", Records: res.New},
			{Name: "default", Records: res.UnclassifiedBaseline},
		})
		if err != nil {
			return eris.Wrap(err, "compare")
		}
	}
	return nil
}

// classifyDiff tags the existing and new partitions. The plain diff files are
// already on disk when it runs, so a lookup failure leaves them in place.
func classifyDiff(ctx context.Context, res reconcile.Result) error {
	if err := cfg.Validate("lookup"); err != nil {
		return eris.Wrap(err, "compare: classify")
	}

	backend, closeFn, err := openRegistry(ctx)
	if err != nil {
		return eris.Wrap(err, "compare: open registry")
	}
	defer closeFn()

	ids := model.EntityIDs(append(append([]model.Record{}, res.Existing...), res.New...))
	cls, err := newResolver(backend).Classify(ctx, ids)
	if err != nil {
		return eris.Wrap(err, "compare: classify")
	}

	for _, o := range []struct {
		name    string
		records []model.Record
	}{
		{existingClassifiedFile, res.Existing},
		{newClassifiedFile, res.New},
	} {
		path, err := outputPath(compareOutDir, o.name)
		if err != nil {
			return err
		}
		if err := writeClassifiedFile(path, o.records, cls); err != nil {
			return eris.Wrap(err, "compare")
		}
	}
	return nil
}

func init() {
	compareCmd.Flags().StringVar(&compareCurrentPath, "current", "", "current canonical snapshot (required)")
	compareCmd.Flags().StringVar(&comparePreviousPath, "previous", "", "previous canonical snapshot (required)")
	compareCmd.Flags().StringVar(&compareRefDate, "ref-date", "", "reference date YYYY-MM-DD; the window is the month before it (default today)")
	compareCmd.Flags().StringVar(&compareOutDir, "out-dir", ".", "directory for the output CSV files")
	compareCmd.Flags().StringVar(&compareXLSXPath, "xlsx", "", "also write all partitions to this workbook")
	compareCmd.Flags().BoolVar(&compareClassify, "classify", false, "tag existing and new companies as government or private")
	_ = compareCmd.MarkFlagRequired("current")
	_ = compareCmd.MarkFlagRequired("previous")
	rootCmd.AddCommand(compareCmd)
}
