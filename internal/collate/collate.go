// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collate orchestrates packet assembly: one output PDF per main
// question pairing each student's answer pages with the mark scheme,
// plus a trailing extra-space packet. Processing is fully sequential;
// the first fatal error aborts the run and leaves earlier outputs on
// disk.
package collate

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/gradepack/internal/compose"
	"github.com/pdiddy/gradepack/internal/pdfdoc"
	"github.com/pdiddy/gradepack/pkg/types"
)

// CollateQuestion builds Q<n>.pdf for one question group: for every
// student, in discovery order, one composed page per question page that
// student actually has. Students missing pages are tolerated; a
// mark-scheme page outside the document is fatal. The output is written
// even when no student contributed a page.
func CollateQuestion(group types.QuestionGroup, markSchemePath string, students []types.Student, outDir string, w io.Writer) (types.OutputRecord, error) {
	var rec types.OutputRecord

	fmt.Fprintf(w, "\nProcessing %s...\n", group.MainID)
	fmt.Fprintf(w, "  question pages:    %v\n", group.QuestionPages)
	fmt.Fprintf(w, "  mark scheme pages: %v\n", group.MarkSchemePages)

	scheme, err := pdfdoc.Open(markSchemePath)
	if err != nil {
		return rec, err
	}
	defer scheme.Close()

	for _, p := range group.MarkSchemePages {
		if !scheme.HasPage(p) {
			return rec, &types.BoundsError{Question: group.MainID, Page: p, Count: scheme.PageCount()}
		}
	}

	layout, err := compose.SchemeFor(scheme, group.MarkSchemePages)
	if err != nil {
		return rec, fmt.Errorf("%s: %w", group.MainID, err)
	}

	c := compose.New()
	for _, s := range students {
		if err := collateStudent(c, s, group, layout); err != nil {
			return rec, err
		}
	}

	rec = types.OutputRecord{File: group.MainID + ".pdf", Pages: c.PageCount()}
	if err := c.WriteFile(filepath.Join(outDir, rec.File)); err != nil {
		return rec, err
	}

	fmt.Fprintf(w, "  saved %s (%d pages)\n", rec.File, rec.Pages)
	return rec, nil
}

// collateStudent composes this student's pages for one question group.
// The student's document handle is scoped to this call and released
// exactly once, whatever fails inside.
func collateStudent(c *compose.Compositor, s types.Student, group types.QuestionGroup, layout compose.SchemeLayout) error {
	doc, err := pdfdoc.Open(s.Path)
	if err != nil {
		return err
	}
	defer doc.Close()

	// Pages beyond this student's document are skipped, so the page
	// total in the label can differ between students.
	var pages []int
	for _, p := range group.QuestionPages {
		if doc.HasPage(p) {
			pages = append(pages, p)
		}
	}

	for i, p := range pages {
		label := compose.QuestionLabel{
			Student: s.Name,
			Number:  group.Number,
			Index:   i + 1,
			Total:   len(pages),
		}
		if err := c.AddQuestionPage(compose.Page{Doc: doc, Number: p}, layout, label); err != nil {
			return err
		}
	}
	return nil
}
