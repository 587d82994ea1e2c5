// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mapping

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/gradepack/pkg/types"
)

// Required column headers in the page-mapping table. Extra columns are
// ignored.
const (
	colQuestion   = "Q"
	colQuestionPg = "Question Page Map"
	colSchemePg   = "Mark scheme page map"
)

// ReadTable loads the page-mapping table at path. Files ending in .xlsx
// are read as spreadsheets (first sheet); everything else is treated as
// delimited text, trying tab first and then comma, keeping the first
// attempt that yields the required column set. A table missing the
// required columns under every delimiter is a FormatError.
func ReadTable(path string) ([]types.PageMapRow, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readExcel(path)
	}
	return readDelimited(path)
}

func readDelimited(path string) ([]types.PageMapRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page mapping %s: %w", path, err)
	}

	for _, delim := range []rune{'\t', ','} {
		r := csv.NewReader(strings.NewReader(string(data)))
		r.Comma = delim
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		records, err := r.ReadAll()
		if err != nil {
			continue
		}
		rows, ok := rowsFromRecords(records)
		if ok {
			return rows, nil
		}
	}

	return nil, &types.FormatError{
		Input:  filepath.Base(path),
		Reason: fmt.Sprintf("no delimiter yields columns %q, %q, %q", colQuestion, colQuestionPg, colSchemePg),
	}
}

func readExcel(path string) ([]types.PageMapRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening page mapping %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &types.FormatError{Input: filepath.Base(path), Reason: "workbook has no sheets"}
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}

	rows, ok := rowsFromRecords(records)
	if !ok {
		return nil, &types.FormatError{
			Input:  filepath.Base(path),
			Reason: fmt.Sprintf("sheet %s is missing columns %q, %q, %q", sheets[0], colQuestion, colQuestionPg, colSchemePg),
		}
	}
	return rows, nil
}

// rowsFromRecords maps raw records onto PageMapRows via the header row.
// It reports false when the header lacks any required column.
func rowsFromRecords(records [][]string) ([]types.PageMapRow, bool) {
	if len(records) == 0 {
		return nil, false
	}

	cols := make(map[string]int)
	for i, h := range records[0] {
		cols[strings.TrimSpace(h)] = i
	}
	qIdx, ok1 := cols[colQuestion]
	qpIdx, ok2 := cols[colQuestionPg]
	msIdx, ok3 := cols[colSchemePg]
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}

	rows := make([]types.PageMapRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, types.PageMapRow{
			Question:        cell(rec, qIdx),
			QuestionPages:   cell(rec, qpIdx),
			MarkSchemePages: cell(rec, msIdx),
		})
	}
	return rows, true
}

// cell returns the trimmed field at idx, or "" for short records (xlsx
// readers drop trailing empty cells).
func cell(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
