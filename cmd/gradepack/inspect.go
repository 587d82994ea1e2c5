// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/gradepack/internal/collate"
	"github.com/pdiddy/gradepack/internal/discover"
	"github.com/pdiddy/gradepack/internal/mapping"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Preview input discovery and the parsed page mapping",
	Long: `Inspect runs discovery and mapping parsing without composing any PDFs:
it reports which files each input slot resolves to, how the mapping rows
group into main questions, and where the extra-space region starts. Use
it to sanity-check a batch before a full collate.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().String("inputs", "", "base directory for input files (default: inputs)")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputsDir := stringSetting(cmd, "inputs", "collation.inputs_dir", "inputs")

	in, err := discover.Discover(inputsDir, os.Stdout)
	if err != nil {
		return err
	}

	rows, groups, err := collate.LoadMapping(in.Mapping, os.Stdout)
	if err != nil {
		return err
	}

	maxPage, err := mapping.MaxQuestionPage(rows)
	if err != nil {
		return err
	}

	for _, g := range groups {
		fmt.Printf("\n%s\n", g.MainID)
		fmt.Printf("  question pages:    %v\n", g.QuestionPages)
		fmt.Printf("  mark scheme pages: %v\n", g.MarkSchemePages)
	}
	fmt.Printf("\nExtra space starts after page %d.\n", maxPage)
	fmt.Printf("%d students, %d main questions.\n", len(in.Students), len(groups))
	return nil
}
