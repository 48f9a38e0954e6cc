package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reconcile-cli/internal/ingest"
	"github.com/sells-group/reconcile-cli/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the CNPJ legal-nature registry",
}

var (
	registryInPath    string
	registryCNPJCol   string
	registryNatureCol string
	registryReplace   bool
	registrySheet     string
)

var registryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a company_details snapshot into the configured lookup backend",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("lookup"); err != nil {
			return err
		}

		in := ingestOptions()
		in.Sheet = sheetOptions(registrySheet)
		t, err := ingest.ReadFile(ctx, registryInPath, in)
		if err != nil {
			return eris.Wrap(err, "registry import")
		}
		entries, err := registry.ParseEntries(t, registryCNPJCol, registryNatureCol)
		if err != nil {
			return eris.Wrap(err, "registry import")
		}

		backend, closeFn, err := openRegistry(ctx)
		if err != nil {
			return eris.Wrap(err, "registry import: open registry")
		}
		defer closeFn()

		load := backend.Import
		if registryReplace {
			load = backend.Replace
		}
		n, err := load(ctx, entries)
		if err != nil {
			return eris.Wrap(err, "registry import")
		}

		zap.L().Info("registry import complete",
			zap.String("driver", cfg.Lookup.Driver),
			zap.Int("parsed", len(entries)),
			zap.Int64("written", n),
			zap.Bool("replace", registryReplace),
		)
		return nil
	},
}

func init() {
	registryImportCmd.Flags().StringVar(&registryInPath, "in", "", "snapshot CSV/XLSX (required)")
	registryImportCmd.Flags().StringVar(&registryCNPJCol, "cnpj-col", registry.ColCNPJ, "identifier column")
	registryImportCmd.Flags().StringVar(&registryNatureCol, "nature-col", registry.ColNature, "legal-nature column")
	registryImportCmd.Flags().BoolVar(&registryReplace, "replace", false, "replace the whole snapshot instead of upserting")
	registryImportCmd.Flags().StringVar(&registrySheet, "sheet", "", "worksheet name or zero-based index for .xlsx snapshots")
	_ = registryImportCmd.MarkFlagRequired("in")

	registryCmd.AddCommand(registryImportCmd)
	rootCmd.AddCommand(registryCmd)
}
