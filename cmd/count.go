package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reconcile-cli/internal/ingest"
	"github.com/sells-group/reconcile-cli/internal/tally"
)

var (
	countInPath    string
	countMonth     string
	countDelimiter string
	countStatusCol string
	countPlanCol   string
	countDateCol   string
	countSheet     string
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count raw export lines by plan and status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("ingest"); err != nil {
			return err
		}

		opts := tally.Options{
			StatusCol: countStatusCol,
			PlanCol:   countPlanCol,
			DateCol:   countDateCol,
		}
		if countMonth != "" {
			m, err := tally.ParseMonth(countMonth)
			if err != nil {
				return err
			}
			opts.Month = &m
		}

		in := ingestOptions()
		in.Sheet = sheetOptions(countSheet)
		if countDelimiter != "" {
			r := []rune(countDelimiter)
			if len(r) != 1 {
				return eris.Errorf("count: --delimiter must be a single character, got %q", countDelimiter)
			}
			in.Delimiter = r[0]
		}

		t, err := ingest.ReadFile(ctx, countInPath, in)
		if err != nil {
			return eris.Wrap(err, "count")
		}

		s, err := tally.Count(t, opts)
		if err != nil {
			return eris.Wrap(err, "count")
		}

		printSummary(cmd.OutOrStdout(), s, opts.Month)
		return nil
	},
}

func printSummary(w io.Writer, s *tally.Summary, month *tally.Month) {
	scope := "all rows"
	if month != nil {
		scope = month.String()
	}

	fmt.Fprintf(w, "Lines by plan (%s): %d\n", scope, s.Total)
	for _, p := range s.SortedPlans() {
		fmt.Fprintf(w, "\n%s: %d\n", p.Key, p.Count)
		for _, st := range s.SortedPlanStatuses(p.Key) {
			fmt.Fprintf(w, "  %s: %d\n", st.Key, st.Count)
		}
	}

	fmt.Fprintf(w, "\nLines by status (%s):\n", scope)
	for _, st := range s.SortedStatuses() {
		fmt.Fprintf(w, "  %s: %d\n", st.Key, st.Count)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(w, "\nSkipped (unparseable date): %d\n", s.Skipped)
	}
}

func init() {
	countCmd.Flags().StringVar(&countInPath, "in", "", "raw operator export (required)")
	countCmd.Flags().StringVar(&countMonth, "month", "", "only count rows dated in this month (YYYY-MM)")
	countCmd.Flags().StringVar(&countDelimiter, "delimiter", "", "force the CSV delimiter instead of sniffing it")
	countCmd.Flags().StringVar(&countStatusCol, "status-col", tally.DefaultStatusCol, "status column")
	countCmd.Flags().StringVar(&countPlanCol, "plan-col", tally.DefaultPlanCol, "plan column")
	countCmd.Flags().StringVar(&countDateCol, "date-col", tally.DefaultDateCol, "status date column (DD/MM/YYYY)")
	countCmd.Flags().StringVar(&countSheet, "sheet", "", "worksheet name or zero-based index for .xlsx inputs")
	_ = countCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(countCmd)
}
