// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/gradepack/internal/discover"
	"github.com/pdiddy/gradepack/internal/manifest"
	"github.com/pdiddy/gradepack/internal/mapping"
	"github.com/pdiddy/gradepack/pkg/types"
)

// Run executes the full collation pipeline: discover inputs, parse and
// group the page mapping, collate every question in numeric order, then
// the extra-space phase, then write the run manifest. The returned
// record summarizes everything written.
func Run(cfg types.CollationConfig, w io.Writer) (*types.RunRecord, error) {
	started := time.Now()

	in, err := discover.Discover(cfg.InputsDir, w)
	if err != nil {
		return nil, err
	}

	rows, groups, err := LoadMapping(in.Mapping, w)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.OutputsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating outputs directory: %w", err)
	}

	record := &types.RunRecord{
		StartedAt: started,
		Students:  len(in.Students),
		Questions: len(groups),
	}

	for _, g := range groups {
		rec, err := CollateQuestion(g, in.MarkScheme, in.Students, cfg.OutputsDir, w)
		if err != nil {
			return nil, err
		}
		record.Outputs = append(record.Outputs, rec)
	}

	maxPage, err := mapping.MaxQuestionPage(rows)
	if err != nil {
		return nil, err
	}
	extra, err := CollateExtraSpace(maxPage, in.Students, cfg.OutputsDir, w)
	if err != nil {
		return nil, err
	}
	if extra != nil {
		record.Outputs = append(record.Outputs, *extra)
	}

	record.FinishedAt = time.Now()
	if err := manifest.Write(filepath.Join(cfg.OutputsDir, manifest.FileName), *record); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\nCollation complete: %d outputs, %d composed pages\n",
		len(record.Outputs), record.TotalPages())
	return record, nil
}

// LoadMapping reads and groups the page-mapping table, reporting the
// grouping to w the way a run log shows it.
func LoadMapping(path string, w io.Writer) ([]types.PageMapRow, []types.QuestionGroup, error) {
	fmt.Fprintln(w, "\nParsing page mapping...")

	rows, err := mapping.ReadTable(path)
	if err != nil {
		return nil, nil, err
	}
	groups, err := mapping.GroupRows(rows)
	if err != nil {
		return nil, nil, err
	}

	fmt.Fprintf(w, "  grouped %d rows into %d main questions\n", len(rows), len(groups))
	for _, g := range groups {
		subs := make([]string, len(g.Rows))
		for i, r := range g.Rows {
			subs[i] = r.Question
		}
		fmt.Fprintf(w, "    %s: %s\n", g.MainID, strings.Join(subs, ", "))
	}
	return rows, groups, nil
}
