// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collate

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/gradepack/internal/compose"
	"github.com/pdiddy/gradepack/internal/pdfdoc"
	"github.com/pdiddy/gradepack/pkg/types"
)

// ExtraSpaceFile is the output name for the trailing-pages packet.
const ExtraSpaceFile = "Extra_space.pdf"

// taggedPage is a collected trailing page with its owner's name.
type taggedPage struct {
	page compose.Page
	name string
}

// CollateExtraSpace gathers every student page past the last mapped
// question page and pairs them two per composed page, in collection
// order (student order, then page order). Pairing is plain adjacency:
// halves of one output page can belong to different students. With no
// trailing pages at all the output file is not created. Returns the
// output record, or nil when skipped.
//
// Composed pages read from still-open source documents, so an arena
// keeps every student document open until the packet is written.
func CollateExtraSpace(maxQuestionPage int, students []types.Student, outDir string, w io.Writer) (*types.OutputRecord, error) {
	fmt.Fprintln(w, "\nProcessing extra space pages...")
	fmt.Fprintf(w, "  last mapped question page: %d\n", maxQuestionPage)

	var arena pdfdoc.Arena
	defer arena.Release()

	var collected []taggedPage
	for _, s := range students {
		doc, err := arena.Open(s.Path)
		if err != nil {
			return nil, err
		}
		for p := maxQuestionPage + 1; p <= doc.PageCount(); p++ {
			collected = append(collected, taggedPage{
				page: compose.Page{Doc: doc, Number: p},
				name: s.Name,
			})
		}
	}
	fmt.Fprintf(w, "  found %d extra space pages across %d students\n", len(collected), len(students))

	if len(collected) == 0 {
		fmt.Fprintln(w, "  skipped: nothing to collect")
		return nil, nil
	}

	c := compose.New()
	for i := 0; i < len(collected); i += 2 {
		left := collected[i]
		var right *compose.Page
		rightName := ""
		if i+1 < len(collected) {
			right = &collected[i+1].page
			rightName = collected[i+1].name
		}
		if err := c.AddExtraSpacePage(left.page, right, left.name, rightName); err != nil {
			return nil, err
		}
	}

	rec := types.OutputRecord{File: ExtraSpaceFile, Pages: c.PageCount()}
	if err := c.WriteFile(filepath.Join(outDir, rec.File)); err != nil {
		return nil, err
	}
	if err := arena.Release(); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "  saved %s (%d pages)\n", rec.File, rec.Pages)
	return &rec, nil
}
