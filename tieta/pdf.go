// Package tieta extracts the first chapter of a PDF book, cleans and
// chunks the text, and wraps the chunks in LLM prompt scaffolding
// written to a .txt file.
package tieta

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Document is a page-addressable text source. Page indices are
// 0-based.
type Document interface {
	PageCount() int
	PageText(i int) (string, error)
}

// pdfDocument adapts a pdf.Reader to the Document interface.
type pdfDocument struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenPDF opens a PDF file as a Document. Close releases the file.
func OpenPDF(path string) (*pdfDocument, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tieta: open %s: %w", path, err)
	}
	return &pdfDocument{file: f, reader: r}, nil
}

func (d *pdfDocument) PageCount() int {
	return d.reader.NumPage()
}

func (d *pdfDocument) PageText(i int) (string, error) {
	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("tieta: page %d: %w", i+1, err)
	}
	return text, nil
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}
