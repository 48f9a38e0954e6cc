package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/config"
)

var (
	cfg    *config.Config
	tables config.Tables
)

var rootCmd = &cobra.Command{
	Use:   "reconcile-cli",
	Short: "Telecom contract export reconciliation",
	Long:  "Unifies operator line exports, diffs monthly snapshots against the previous customer base, and tags companies as government or private from the CNPJ registry.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		zap.ReplaceGlobals(zap.L().With(zap.String("run_id", uuid.NewString())))

		t, err := config.LoadTables(cfg.Tables.Path)
		if err != nil {
			return fmt.Errorf("load tables: %w", err)
		}
		tables = t

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
