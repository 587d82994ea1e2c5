// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/gradepack/internal/pdfdoc"
)

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

func openDoc(t *testing.T, dir, name string, pages int) *pdfdoc.Document {
	t.Helper()
	path := filepath.Join(dir, name)
	makePDF(t, path, pages)
	doc, err := pdfdoc.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { doc.Close() })
	return doc
}

// verifyPDF checks that the written output is a valid PDF with the
// expected page count.
func verifyPDF(t *testing.T, path string, wantPages int) {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		t.Fatalf("output %s fails validation: %v", path, err)
	}
	got, err := api.PageCountFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != wantPages {
		t.Errorf("%s has %d pages, want %d", path, got, wantPages)
	}
}

func TestSchemeFor(t *testing.T) {
	dir := t.TempDir()
	scheme := openDoc(t, dir, "scheme.pdf", 4)

	tests := []struct {
		name    string
		pages   []int
		want    schemeKind
		wantErr bool
	}{
		{name: "empty", pages: nil, want: schemeEmpty},
		{name: "single", pages: []int{2}, want: schemeSingle},
		{name: "pair", pages: []int{2, 3}, want: schemePair},
		{name: "three pages rejected", pages: []int{1, 2, 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := SchemeFor(scheme, tt.pages)
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if layout.kind != tt.want {
				t.Errorf("kind = %d, want %d", layout.kind, tt.want)
			}
		})
	}
}

func TestQuestionLabelText(t *testing.T) {
	tests := []struct {
		name  string
		label QuestionLabel
		want  string
	}{
		{
			name:  "single page omits suffix",
			label: QuestionLabel{Student: "alice", Number: 1, Index: 1, Total: 1},
			want:  "alice Question 1",
		},
		{
			name:  "multi page carries page info",
			label: QuestionLabel{Student: "bob", Number: 4, Index: 2, Total: 3},
			want:  "bob Question 4 (page 2/3)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.text(); got != tt.want {
				t.Errorf("text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddQuestionPage(t *testing.T) {
	dir := t.TempDir()
	student := openDoc(t, dir, "alice.pdf", 5)
	scheme := openDoc(t, dir, "scheme.pdf", 4)

	layout, err := SchemeFor(scheme, []int{2, 3})
	if err != nil {
		t.Fatal(err)
	}

	c := New()
	for i := 1; i <= 2; i++ {
		err := c.AddQuestionPage(
			Page{Doc: student, Number: i},
			layout,
			QuestionLabel{Student: "alice", Number: 1, Index: i, Total: 2},
		)
		if err != nil {
			t.Fatal(err)
		}
	}
	if c.PageCount() != 2 {
		t.Errorf("PageCount = %d, want 2", c.PageCount())
	}

	out := filepath.Join(dir, "Q1.pdf")
	if err := c.WriteFile(out); err != nil {
		t.Fatal(err)
	}
	verifyPDF(t, out, 2)
}

func TestAddQuestionPageEmptyScheme(t *testing.T) {
	dir := t.TempDir()
	student := openDoc(t, dir, "bob.pdf", 1)

	layout, err := SchemeFor(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	c := New()
	err = c.AddQuestionPage(
		Page{Doc: student, Number: 1},
		layout,
		QuestionLabel{Student: "bob", Number: 3, Index: 1, Total: 1},
	)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "Q3.pdf")
	if err := c.WriteFile(out); err != nil {
		t.Fatal(err)
	}
	verifyPDF(t, out, 1)
}

func TestAddExtraSpacePage(t *testing.T) {
	dir := t.TempDir()
	alice := openDoc(t, dir, "alice.pdf", 2)
	bob := openDoc(t, dir, "bob.pdf", 2)

	c := New()
	right := Page{Doc: bob, Number: 1}
	if err := c.AddExtraSpacePage(Page{Doc: alice, Number: 1}, &right, "alice", "bob"); err != nil {
		t.Fatal(err)
	}
	// Odd tail: right half blank.
	if err := c.AddExtraSpacePage(Page{Doc: alice, Number: 2}, nil, "alice", ""); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "Extra_space.pdf")
	if err := c.WriteFile(out); err != nil {
		t.Fatal(err)
	}
	verifyPDF(t, out, 2)
}
