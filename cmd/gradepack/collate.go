// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/gradepack/internal/collate"
	"github.com/pdiddy/gradepack/internal/ledger"
	"github.com/pdiddy/gradepack/pkg/types"
)

var collateCmd = &cobra.Command{
	Use:   "collate",
	Short: "Build per-question grading packets from the inputs tree",
	Long: `Collate discovers the mark scheme, question paper, page mapping, and
student responses under the inputs directory, then writes one packet per
main question (Q1.pdf, Q2.pdf, ...) plus Extra_space.pdf for pages after
the last mapped question page. A manifest.yaml summarizing the run lands
next to the packets, and the run is appended to the ledger unless
recording is disabled.

Any missing input, malformed mapping cell, or out-of-range mark-scheme
page aborts the whole run; packets already written stay on disk.`,
	RunE: runCollate,
}

func init() {
	collateCmd.Flags().String("inputs", "", "base directory for input files (default: inputs)")
	collateCmd.Flags().String("outputs", "", "directory for generated packets (default: outputs)")
	collateCmd.Flags().String("ledger-dir", "", "run ledger directory (default: <outputs>/.ledger)")
	collateCmd.Flags().Bool("no-ledger", false, "do not record this run in the ledger")

	rootCmd.AddCommand(collateCmd)
}

func runCollate(cmd *cobra.Command, args []string) error {
	cfg := collationConfig(cmd)

	rec, err := collate.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}

	noLedger, _ := cmd.Flags().GetBool("no-ledger")
	if noLedger || viper.GetBool("ledger.disabled") {
		return nil
	}
	store, err := ledger.Open(types.LedgerConfig{LedgerDir: ledgerDir(cmd, cfg.OutputsDir)})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(context.Background(), *rec); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Run recorded in ledger.")
	return nil
}

// stringSetting resolves one setting: the command's flag when set, then
// the config file key, then the built-in fallback. The flag must be
// registered on cmd.
func stringSetting(cmd *cobra.Command, flag, key, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

// collationConfig resolves the input and output directories for commands
// registering the --inputs and --outputs flags.
func collationConfig(cmd *cobra.Command) types.CollationConfig {
	return types.CollationConfig{
		InputsDir:  stringSetting(cmd, "inputs", "collation.inputs_dir", "inputs"),
		OutputsDir: stringSetting(cmd, "outputs", "collation.outputs_dir", "outputs"),
	}
}

// ledgerDir resolves the ledger directory, defaulting to a dot directory
// inside the resolved outputs directory.
func ledgerDir(cmd *cobra.Command, outputsDir string) string {
	return stringSetting(cmd, "ledger-dir", "ledger.ledger_dir", filepath.Join(outputsDir, ".ledger"))
}
