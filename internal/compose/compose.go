// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose renders composed grading pages: a fixed landscape
// canvas with source PDF pages embedded into set regions and an opaque
// label bar identifying the student. Placement stretches source content
// to exactly fill the destination rectangle; aspect ratio is not
// preserved.
package compose

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/phpdave11/gofpdi"

	"github.com/pdiddy/gradepack/internal/pdfdoc"
)

// Canvas geometry, in points. A4 rotated: 842 wide, 595 tall.
const (
	pageWidth  = 842.0
	pageHeight = 595.0

	// leftShare is the student region's share of the width in question
	// mode; the mark scheme takes the rest.
	leftShare = 0.6

	barHeight  = 40.0
	barGray    = 77 // fill gray 0.3
	barOpacity = 0.85
	textInset  = 10.0
	textRise   = 12.0
	fontSize   = 14.0
)

// Page addresses one page of an open source document, 1-based.
type Page struct {
	Doc    *pdfdoc.Document
	Number int
}

// SchemeLayout describes how mark-scheme pages fill the right region:
// none (blank), one page filling it, or two stacked top/bottom.
type SchemeLayout struct {
	kind   schemeKind
	first  Page
	second Page
}

type schemeKind int

const (
	schemeEmpty schemeKind = iota
	schemeSingle
	schemePair
)

// SchemeFor builds the layout for the given mark-scheme pages. More than
// two pages cannot be laid out and is an error; a mapping that wide needs
// to be split into sub-questions.
func SchemeFor(doc *pdfdoc.Document, pages []int) (SchemeLayout, error) {
	switch len(pages) {
	case 0:
		return SchemeLayout{kind: schemeEmpty}, nil
	case 1:
		return SchemeLayout{kind: schemeSingle, first: Page{Doc: doc, Number: pages[0]}}, nil
	case 2:
		return SchemeLayout{
			kind:   schemePair,
			first:  Page{Doc: doc, Number: pages[0]},
			second: Page{Doc: doc, Number: pages[1]},
		}, nil
	default:
		return SchemeLayout{}, fmt.Errorf("mark scheme layout supports at most 2 pages, got %d", len(pages))
	}
}

// QuestionLabel holds the label bar fields for a question page.
type QuestionLabel struct {
	Student string
	Number  int
	Index   int // 1-based position among this student's pages for the question
	Total   int // number of pages this student has for the question
}

func (l QuestionLabel) text() string {
	s := fmt.Sprintf("%s Question %d", l.Student, l.Number)
	if l.Total > 1 {
		s += fmt.Sprintf(" (page %d/%d)", l.Index, l.Total)
	}
	return s
}

// Compositor builds one output document, appending composed pages until
// WriteFile. Each Compositor owns its own page importer; imported source
// pages are cached per document for the Compositor's lifetime.
type Compositor struct {
	pdf *gofpdf.Fpdf
	imp *gofpdi.Importer
}

// New returns a Compositor with an empty output document.
func New() *Compositor {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &Compositor{pdf: pdf, imp: gofpdi.NewImporter()}
}

// AddQuestionPage appends a composed page: the student's page in the left
// region, the mark scheme in the right region per the layout, and the
// label bar anchored bottom-left.
func (c *Compositor) AddQuestionPage(student Page, scheme SchemeLayout, label QuestionLabel) error {
	c.pdf.AddPage()

	leftWidth := pageWidth * leftShare
	rightWidth := pageWidth - leftWidth

	if err := c.placePage(student, 0, 0, leftWidth, pageHeight); err != nil {
		return err
	}

	switch scheme.kind {
	case schemeSingle:
		if err := c.placePage(scheme.first, leftWidth, 0, rightWidth, pageHeight); err != nil {
			return err
		}
	case schemePair:
		half := pageHeight / 2
		if err := c.placePage(scheme.first, leftWidth, 0, rightWidth, half); err != nil {
			return err
		}
		if err := c.placePage(scheme.second, leftWidth, half, rightWidth, half); err != nil {
			return err
		}
	}

	c.labelBar(0, leftWidth, label.text())
	return c.pdf.Error()
}

// AddExtraSpacePage appends a 50/50 composed page. The right half stays
// blank when right is nil. Each occupied half gets its own label bar.
func (c *Compositor) AddExtraSpacePage(left Page, right *Page, leftName, rightName string) error {
	c.pdf.AddPage()

	half := pageWidth / 2
	if err := c.placePage(left, 0, 0, half, pageHeight); err != nil {
		return err
	}
	c.labelBar(0, half, leftName+" Extra Space")

	if right != nil {
		if err := c.placePage(*right, half, 0, half, pageHeight); err != nil {
			return err
		}
		c.labelBar(half, half, rightName+" Extra Space")
	}
	return c.pdf.Error()
}

// PageCount returns the number of composed pages so far.
func (c *Compositor) PageCount() int {
	return c.pdf.PageCount()
}

// WriteFile writes the output document to path and closes it. The
// Compositor must not be used afterwards.
func (c *Compositor) WriteFile(path string) error {
	if err := c.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// placePage embeds the source page into the destination rectangle,
// stretching content to fill it. gofpdi panics on malformed input, so
// the panic is converted to an error here.
func (c *Compositor) placePage(p Page, x, y, w, h float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("embedding page %d of %s: %v", p.Number, p.Doc.Name(), r)
		}
	}()

	rs := p.Doc.Reader()
	if _, err := (*rs).Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", p.Doc.Name(), err)
	}

	c.imp.SetSourceStream(rs)
	tpl := c.imp.ImportPage(p.Number, "/MediaBox")

	c.pdf.ImportTemplates(c.imp.PutFormXobjectsUnordered())
	c.pdf.ImportObjects(c.imp.GetImportedObjectsUnordered())
	c.pdf.ImportObjPos(c.imp.GetImportedObjHashPos())

	name, sx, sy, tx, ty := c.imp.UseTemplate(tpl, x, y, w, h)
	c.pdf.UseImportedTemplate(name, sx, sy, tx, ty)
	return c.pdf.Error()
}

// labelBar draws the semi-opaque bar across [x0, x0+width] at the page
// bottom and writes the white label text onto it.
func (c *Compositor) labelBar(x0, width float64, text string) {
	c.pdf.SetAlpha(barOpacity, "Normal")
	c.pdf.SetFillColor(barGray, barGray, barGray)
	c.pdf.Rect(x0, pageHeight-barHeight, width, barHeight, "F")
	c.pdf.SetAlpha(1, "Normal")

	c.pdf.SetFont("Helvetica", "", fontSize)
	c.pdf.SetTextColor(255, 255, 255)
	c.pdf.Text(x0+textInset, pageHeight-textRise, text)
}
