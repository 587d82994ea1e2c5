// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/gradepack/pkg/types"
)

// GroupRows folds the mapping rows into question groups keyed by the
// leading digit run of each question identifier ("1a" and "1b(i)" both
// land in Q1). Rows whose identifier has no leading digits — footer rows
// like "TOTAL" — are skipped. Within a group rows keep table order;
// groups are returned sorted numerically by main question number, so Q2
// processes before Q10.
func GroupRows(rows []types.PageMapRow) ([]types.QuestionGroup, error) {
	index := make(map[int]int) // question number → position in groups
	var groups []types.QuestionGroup

	for _, row := range rows {
		digits := leadingDigits(strings.TrimSpace(row.Question))
		if digits == "" {
			continue
		}
		number, err := strconv.Atoi(digits)
		if err != nil {
			// Unreachable for a pure digit run, but Atoi overflow on an
			// absurd identifier should not pass silently.
			return nil, &types.FormatError{Input: row.Question, Reason: "question number out of range"}
		}

		pos, ok := index[number]
		if !ok {
			pos = len(groups)
			index[number] = pos
			groups = append(groups, types.QuestionGroup{
				MainID: "Q" + digits,
				Number: number,
			})
		}
		groups[pos].Rows = append(groups[pos].Rows, row)
	}

	for i := range groups {
		qPages, msPages, err := unionPages(groups[i].Rows)
		if err != nil {
			return nil, err
		}
		groups[i].QuestionPages = qPages
		groups[i].MarkSchemePages = msPages
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Number < groups[j].Number
	})
	return groups, nil
}

// unionPages merges the question and mark-scheme page ranges across a
// group's rows into sorted, duplicate-free lists.
func unionPages(rows []types.PageMapRow) (qPages, msPages []int, err error) {
	qSet := make(map[int]bool)
	msSet := make(map[int]bool)

	for _, row := range rows {
		pages, err := ParseRange(row.QuestionPages)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range pages {
			qSet[p] = true
		}
		pages, err = ParseRange(row.MarkSchemePages)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range pages {
			msSet[p] = true
		}
	}

	return sortedKeys(qSet), sortedKeys(msSet), nil
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// leadingDigits returns the run of ASCII digits at the start of s.
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
