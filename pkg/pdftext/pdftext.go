// Package pdftext turns PDF bytes into per-page text renderings and
// word-grid rows. It is the upstream collaborator of the extraction
// pipeline: the pipeline only requires the linear text, while the row
// grid is an optional optimization path that preserves cell boundaries
// the plain rendering can lose.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ErrUnreadable means the byte stream could not be opened as a PDF.
var ErrUnreadable = errors.New("not a readable PDF")

// Page is the rendered content of one document page.
type Page struct {
	Number int
	Text   string
	Rows   [][]string
}

// Renderer renders PDF documents page by page.
type Renderer struct{}

// NewRenderer creates a PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render extracts every page of the document in page order. A document
// that cannot be opened yields ErrUnreadable; a page whose content
// stream fails to decode is rendered empty rather than failing the
// whole document.
func (r *Renderer) Render(data []byte) (pages []Page, err error) {
	// The underlying parser panics on some malformed cross-reference
	// tables; map that to the unreadable error like any other open
	// failure.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", ErrUnreadable, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	total := reader.NumPage()
	pages = make([]Page, 0, total)
	for n := 1; n <= total; n++ {
		p := reader.Page(n)
		if p.V.IsNull() {
			pages = append(pages, Page{Number: n})
			continue
		}
		pages = append(pages, Page{
			Number: n,
			Text:   pageText(p),
			Rows:   pageRows(p),
		})
	}
	return pages, nil
}

func pageText(p pdf.Page) string {
	text, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func pageRows(p pdf.Page) [][]string {
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row.Content))
		for _, word := range row.Content {
			if word.S != "" {
				cells = append(cells, word.S)
			}
		}
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}
	return out
}
