// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapping parses the page-mapping table that drives collation:
// the page-range mini-language, grouping of sub-questions under their
// main question number, and the tabular readers (TSV/CSV/XLSX).
package mapping

import (
	"strconv"
	"strings"

	"github.com/pdiddy/gradepack/pkg/types"
)

// ParseRange parses a page-range cell into an ordered list of 1-based
// page numbers. An empty or whitespace-only cell means "no pages" and
// yields nil. A cell containing a single "-" is an inclusive ascending
// range; anything else must be a single integer. Comma lists, multiple
// ranges, and descending ranges are all malformed.
func ParseRange(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, &types.FormatError{Input: spec, Reason: "range start is not a number"}
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, &types.FormatError{Input: spec, Reason: "range end is not a number"}
		}
		if start > end {
			return nil, &types.FormatError{Input: spec, Reason: "range start exceeds range end"}
		}
		pages := make([]int, 0, end-start+1)
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
		return pages, nil
	}

	page, err := strconv.Atoi(spec)
	if err != nil {
		return nil, &types.FormatError{Input: spec, Reason: "not a page number or range"}
	}
	return []int{page}, nil
}

// MaxQuestionPage returns the highest page number appearing in any row's
// question-page range, or 0 when no row maps a page. Pages past this
// bound in a student document are "extra space".
func MaxQuestionPage(rows []types.PageMapRow) (int, error) {
	max := 0
	for _, row := range rows {
		pages, err := ParseRange(row.QuestionPages)
		if err != nil {
			return 0, err
		}
		for _, p := range pages {
			if p > max {
				max = p
			}
		}
	}
	return max, nil
}
