package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/reconcile-cli/internal/model"
	"github.com/sells-group/reconcile-cli/internal/reconcile"
	"github.com/sells-group/reconcile-cli/internal/schema"
)

var (
	unifyActivePath string
	unifyCancelPath string
	unifyOutPath    string
)

var unifyCmd = &cobra.Command{
	Use:   "unify",
	Short: "Merge the active and cancel/suspend exports into one canonical CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("ingest"); err != nil {
			return err
		}

		var active, cancel []model.Record
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			active, err = readRecords(gctx, unifyActivePath, schema.Active.Name)
			return err
		})
		g.Go(func() error {
			var err error
			cancel, err = readRecords(gctx, unifyCancelPath, schema.CancelSuspend.Name)
			return err
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "unify: load sources")
		}

		unified := reconcile.Unify(active, cancel)
		if err := writeRecordsCSV(unifyOutPath, unified); err != nil {
			return eris.Wrap(err, "unify")
		}

		zap.L().Info("unify complete",
			zap.Int("active", len(active)),
			zap.Int("cancel_suspend", len(cancel)),
			zap.Int("unified", len(unified)),
			zap.String("out", unifyOutPath),
		)
		return nil
	},
}

func init() {
	unifyCmd.Flags().StringVar(&unifyActivePath, "active", "", "active lines export (required)")
	unifyCmd.Flags().StringVar(&unifyCancelPath, "cancel", "", "canceled/suspended lines export (required)")
	unifyCmd.Flags().StringVar(&unifyOutPath, "out", "unified.csv", "output CSV path")
	_ = unifyCmd.MarkFlagRequired("active")
	_ = unifyCmd.MarkFlagRequired("cancel")
	rootCmd.AddCommand(unifyCmd)
}
