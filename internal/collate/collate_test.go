// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collate

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/gradepack/pkg/types"
)

// makePDF writes a minimal n-page PDF to path.
func makePDF(t *testing.T, path string, pages int) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 72, fmt.Sprintf("page %d", i))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
}

func pageCount(t *testing.T, path string) int {
	t.Helper()
	n, err := api.PageCountFile(path)
	if err != nil {
		t.Fatalf("page count of %s: %v", path, err)
	}
	return n
}

func TestCollateQuestion(t *testing.T) {
	dir := t.TempDir()
	scheme := filepath.Join(dir, "scheme.pdf")
	makePDF(t, scheme, 22)

	students := []types.Student{
		{Name: "alice", Path: filepath.Join(dir, "alice.pdf")},
		{Name: "bob", Path: filepath.Join(dir, "bob.pdf")},
	}
	makePDF(t, students[0].Path, 8)
	makePDF(t, students[1].Path, 8)

	group := types.QuestionGroup{
		MainID:          "Q2",
		Number:          2,
		QuestionPages:   []int{6, 7},
		MarkSchemePages: []int{21, 22},
	}

	var log bytes.Buffer
	rec, err := CollateQuestion(group, scheme, students, dir, &log)
	if err != nil {
		t.Fatal(err)
	}

	// 2 students x 2 question pages.
	if rec.File != "Q2.pdf" || rec.Pages != 4 {
		t.Errorf("record = %+v, want Q2.pdf with 4 pages", rec)
	}
	if got := pageCount(t, filepath.Join(dir, "Q2.pdf")); got != 4 {
		t.Errorf("Q2.pdf has %d pages, want 4", got)
	}
}

func TestCollateQuestionPartialSubmission(t *testing.T) {
	dir := t.TempDir()
	scheme := filepath.Join(dir, "scheme.pdf")
	makePDF(t, scheme, 22)

	// bob's document ends before the group's second page; his missing
	// page is skipped, not an error.
	students := []types.Student{
		{Name: "alice", Path: filepath.Join(dir, "alice.pdf")},
		{Name: "bob", Path: filepath.Join(dir, "bob.pdf")},
	}
	makePDF(t, students[0].Path, 8)
	makePDF(t, students[1].Path, 6)

	group := types.QuestionGroup{
		MainID:          "Q2",
		Number:          2,
		QuestionPages:   []int{6, 7},
		MarkSchemePages: []int{21},
	}

	var log bytes.Buffer
	rec, err := CollateQuestion(group, scheme, students, dir, &log)
	if err != nil {
		t.Fatal(err)
	}
	// alice contributes 2 pages, bob 1.
	if rec.Pages != 3 {
		t.Errorf("pages = %d, want 3", rec.Pages)
	}
}

func TestCollateQuestionNoContributingPages(t *testing.T) {
	dir := t.TempDir()
	scheme := filepath.Join(dir, "scheme.pdf")
	makePDF(t, scheme, 22)

	// Every mapped question page lies past both student documents, so
	// nothing is composed. The output is still written; the record, not
	// the file, carries the composed page count (an empty gofpdf
	// document closes with one blank physical page).
	students := []types.Student{
		{Name: "alice", Path: filepath.Join(dir, "alice.pdf")},
		{Name: "bob", Path: filepath.Join(dir, "bob.pdf")},
	}
	makePDF(t, students[0].Path, 6)
	makePDF(t, students[1].Path, 6)

	group := types.QuestionGroup{
		MainID:          "Q9",
		Number:          9,
		QuestionPages:   []int{11, 12},
		MarkSchemePages: []int{21},
	}

	var log bytes.Buffer
	rec, err := CollateQuestion(group, scheme, students, dir, &log)
	if err != nil {
		t.Fatal(err)
	}

	if rec.File != "Q9.pdf" || rec.Pages != 0 {
		t.Errorf("record = %+v, want Q9.pdf with 0 pages", rec)
	}
	if got := pageCount(t, filepath.Join(dir, "Q9.pdf")); got != 1 {
		t.Errorf("Q9.pdf has %d physical pages, want 1 blank page", got)
	}
}

func TestCollateQuestionSchemeOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	scheme := filepath.Join(dir, "scheme.pdf")
	makePDF(t, scheme, 10)

	students := []types.Student{{Name: "alice", Path: filepath.Join(dir, "alice.pdf")}}
	makePDF(t, students[0].Path, 8)

	group := types.QuestionGroup{
		MainID:          "Q1",
		Number:          1,
		QuestionPages:   []int{5},
		MarkSchemePages: []int{20},
	}

	var log bytes.Buffer
	_, err := CollateQuestion(group, scheme, students, dir, &log)
	if err == nil {
		t.Fatal("want error for out-of-range mark scheme page")
	}
	var be *types.BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want BoundsError", err)
	}
	if be.Question != "Q1" || be.Page != 20 || be.Count != 10 {
		t.Errorf("BoundsError = %+v", be)
	}
}

func TestCollateQuestionTooManySchemePages(t *testing.T) {
	dir := t.TempDir()
	scheme := filepath.Join(dir, "scheme.pdf")
	makePDF(t, scheme, 10)

	students := []types.Student{{Name: "alice", Path: filepath.Join(dir, "alice.pdf")}}
	makePDF(t, students[0].Path, 8)

	group := types.QuestionGroup{
		MainID:          "Q1",
		Number:          1,
		QuestionPages:   []int{5},
		MarkSchemePages: []int{7, 8, 9},
	}

	var log bytes.Buffer
	if _, err := CollateQuestion(group, scheme, students, dir, &log); err == nil {
		t.Fatal("want error for 3 mark scheme pages")
	}
}

func TestCollateQuestionMissingStudentFile(t *testing.T) {
	dir := t.TempDir()
	scheme := filepath.Join(dir, "scheme.pdf")
	makePDF(t, scheme, 10)

	students := []types.Student{{Name: "ghost", Path: filepath.Join(dir, "ghost.pdf")}}

	group := types.QuestionGroup{
		MainID:          "Q1",
		Number:          1,
		QuestionPages:   []int{1},
		MarkSchemePages: []int{1},
	}

	var log bytes.Buffer
	if _, err := CollateQuestion(group, scheme, students, dir, &log); err == nil {
		t.Fatal("want error for missing student file")
	}
}
