// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gradepack/internal/ledger"
	"github.com/pdiddy/gradepack/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past collation runs from the ledger",
	Long: `Runs prints the recorded collation history, most recent first: when
each batch ran, how many students and questions it covered, and the
packets it produced.`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().String("outputs", "", "directory for generated packets (default: outputs)")
	runsCmd.Flags().String("ledger-dir", "", "run ledger directory (default: <outputs>/.ledger)")
	runsCmd.Flags().Bool("json", false, "output runs as JSON")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	outputsDir := stringSetting(cmd, "outputs", "collation.outputs_dir", "outputs")

	store, err := ledger.Open(types.LedgerConfig{LedgerDir: ledgerDir(cmd, outputsDir)})
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-9s  %-8s  %-9s  %-5s  %s\n",
		"Started", "Duration", "Students", "Questions", "Pages", "Outputs")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-20s  %-9s  %-8d  %-9d  %-5d  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.Students, r.Questions, r.TotalPages(), formatOutputs(r.Outputs))
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func formatOutputs(outputs []types.OutputRecord) string {
	names := make([]string, len(outputs))
	for i, o := range outputs {
		names[i] = o.File
	}
	s := strings.Join(names, ", ")
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return s
}
