package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/classify"
	"github.com/sells-group/reconcile-cli/internal/export"
	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

var (
	classifyInPath  string
	classifyOutPath string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Tag every company of a canonical file as government or private",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		records, err := readRecords(ctx, classifyInPath, schema.Canonical.Name)
		if err != nil {
			return eris.Wrap(err, "classify: load")
		}

		backend, closeFn, err := openRegistry(ctx)
		if err != nil {
			return eris.Wrap(err, "classify: open registry")
		}
		defer closeFn()

		cls, err := newResolver(backend).Classify(ctx, model.EntityIDs(records))
		if err != nil {
			return eris.Wrap(err, "classify")
		}

		if err := writeClassifiedFile(classifyOutPath, records, cls); err != nil {
			return eris.Wrap(err, "classify")
		}

		zap.L().Info("classify complete",
			zap.Int("records", len(records)),
			zap.Int("companies", len(cls.Tags)),
			zap.String("out", classifyOutPath),
		)
		return nil
	},
}

func writeClassifiedFile(path string, records []model.Record, cls *classify.Classification) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := export.WriteClassifiedCSV(f, records, cls); err != nil {
		f.Close() //nolint:errcheck
		return eris.Wrapf(err, "write %s", path)
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func init() {
	classifyCmd.Flags().StringVar(&classifyInPath, "in", "", "canonical CSV to classify (required)")
	classifyCmd.Flags().StringVar(&classifyOutPath, "out", "classified.csv", "output CSV path")
	_ = classifyCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(classifyCmd)
}
