// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc owns open source-document handles. A Document wraps an
// open PDF file together with its page count; composed output pages read
// source content through the handle, so a Document must stay open until
// every composed page referencing it has been written.
package pdfdoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// relaxedConf returns a pdfcpu configuration tolerant of the slightly
// off-spec PDFs scanners produce.
func relaxedConf() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Document is an open source PDF. Pages are addressed 1-based.
type Document struct {
	name   string
	path   string
	pages  int
	file   *os.File
	rs     io.ReadSeeker
	closed bool
}

// Open opens the PDF at path and determines its page count. The returned
// Document holds an open file handle until Close.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	pages, err := api.PageCount(f, relaxedConf())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewinding %s: %w", path, err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	d := &Document{name: name, path: path, pages: pages, file: f}
	d.rs = f
	return d, nil
}

// Name is the document's display name: the filename without extension.
func (d *Document) Name() string { return d.name }

// Path is the document's location on disk.
func (d *Document) Path() string { return d.path }

// PageCount is the number of physical pages.
func (d *Document) PageCount() int { return d.pages }

// HasPage reports whether the 1-based page number exists.
func (d *Document) HasPage(page int) bool {
	return page >= 1 && page <= d.pages
}

// Reader hands out the stable ReadSeeker pointer importers key their
// parse cache on. Callers must not retain it past Close.
func (d *Document) Reader() *io.ReadSeeker {
	return &d.rs
}

// Close releases the underlying file. Closing twice is a no-op so that
// scoped cleanup and error paths cannot double-release a handle.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close()
}

// Arena owns every document opened through it and releases each exactly
// once. The extra-space phase opens all student documents up front and
// keeps them alive until the last composed page is written.
type Arena struct {
	docs []*Document
}

// Open opens a document and registers it with the arena.
func (a *Arena) Open(path string) (*Document, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	a.docs = append(a.docs, d)
	return d, nil
}

// Release closes every document in the arena, returning the first error.
func (a *Arena) Release() error {
	var first error
	for _, d := range a.docs {
		if err := d.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.docs = nil
	return first
}
