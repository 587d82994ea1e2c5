// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover locates the collation inputs in the standard tree:
//
//	inputs/mark-scheme/         one PDF
//	inputs/question-paper/      one PDF
//	inputs/page-mapping/        one table (.tsv/.csv/.txt/.xlsx)
//	inputs/student-responses/   one or more PDFs
//
// Any missing input is a DiscoveryError and aborts the run before any
// processing starts.
package discover

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/gradepack/pkg/types"
)

const (
	markSchemeDir = "mark-scheme"
	questionDir   = "question-paper"
	mappingDir    = "page-mapping"
	studentsDir   = "student-responses"
)

// mappingExts are the accepted page-mapping table extensions, in
// preference order.
var mappingExts = []string{".tsv", ".csv", ".txt", ".xlsx"}

// Inputs holds the discovered input paths for one run.
type Inputs struct {
	MarkScheme    string
	QuestionPaper string
	Mapping       string
	Students      []types.Student
}

// Discover walks the standard inputs tree under inputsDir and returns
// the resolved input set. When a directory holds several candidates the
// first in sorted order wins. Progress is reported to w.
func Discover(inputsDir string, w io.Writer) (Inputs, error) {
	var in Inputs

	fmt.Fprintln(w, "Discovering input files...")

	markScheme, err := firstMatch(filepath.Join(inputsDir, markSchemeDir), []string{".pdf"})
	if err != nil {
		return in, err
	}
	in.MarkScheme = markScheme
	fmt.Fprintf(w, "  mark scheme:    %s\n", filepath.Base(markScheme))

	questionPaper, err := firstMatch(filepath.Join(inputsDir, questionDir), []string{".pdf"})
	if err != nil {
		return in, err
	}
	in.QuestionPaper = questionPaper
	fmt.Fprintf(w, "  question paper: %s\n", filepath.Base(questionPaper))

	mappingFile, err := firstMatch(filepath.Join(inputsDir, mappingDir), mappingExts)
	if err != nil {
		return in, err
	}
	in.Mapping = mappingFile
	fmt.Fprintf(w, "  page mapping:   %s\n", filepath.Base(mappingFile))

	students, err := studentResponses(filepath.Join(inputsDir, studentsDir))
	if err != nil {
		return in, err
	}
	in.Students = students
	fmt.Fprintf(w, "  students:       %d response PDFs\n", len(students))

	return in, nil
}

// firstMatch returns the sorted-first file in dir with one of the given
// extensions, probing extensions in order.
func firstMatch(dir string, exts []string) (string, error) {
	for _, ext := range exts {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			return "", fmt.Errorf("globbing %s: %w", dir, err)
		}
		if len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", &types.DiscoveryError{Kind: kindFor(exts), Dir: dir}
}

// studentResponses returns every PDF in dir as a Student, sorted by
// filename. Discovery order fixes processing order for the whole run.
func studentResponses(dir string) ([]types.Student, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, &types.DiscoveryError{Kind: "student response PDFs", Dir: dir}
	}
	sort.Strings(matches)

	students := make([]types.Student, len(matches))
	for i, path := range matches {
		base := filepath.Base(path)
		students[i] = types.Student{
			Name: strings.TrimSuffix(base, filepath.Ext(base)),
			Path: path,
		}
	}
	return students, nil
}

func kindFor(exts []string) string {
	if len(exts) == 1 && exts[0] == ".pdf" {
		return "PDF"
	}
	return "mapping table (" + strings.Join(exts, "/") + ")"
}
