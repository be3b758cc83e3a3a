// Package chunker partitions a located text range into one candidate
// chunk per logical transaction. A transaction may be wrapped across
// several physical lines or table cells; the chunker recovers the
// boundaries by splitting at each action-keyword occurrence and collapses
// the fragments into a single canonical token stream.
package chunker

import (
	"sort"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Chunker splits located content into transaction candidates. The
// Aho-Corasick matcher answers "does this range mention any action
// keyword at all" in one pass, so pages full of non-transaction text are
// rejected without per-keyword scans.
type Chunker struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

// New creates a chunker for the given action keywords.
func New(keywords []string) *Chunker {
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			kept = append(kept, kw)
		}
	}
	return &Chunker{
		keywords: kept,
		matcher:  ahocorasick.NewStringMatcher(kept),
	}
}

// Split partitions content into candidate chunks, one per prospective
// transaction, in source order. A boundary is a zero-width split point at
// each keyword occurrence; the keyword stays with the chunk it opens.
// Text before the first keyword is not a candidate. Chunks that collapse
// to nothing are dropped.
func (c *Chunker) Split(content string) []string {
	if len(c.keywords) == 0 || content == "" {
		return nil
	}
	if len(c.matcher.Match([]byte(content))) == 0 {
		return nil
	}

	cuts := c.boundaries(content)
	if len(cuts) == 0 {
		return nil
	}

	chunks := make([]string, 0, len(cuts))
	for i, start := range cuts {
		end := len(content)
		if i+1 < len(cuts) {
			end = cuts[i+1]
		}
		if chunk := Collapse(content[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// SplitRows flattens extracted table rows into a text range and splits
// it. Cells are joined with single spaces; embedded cell line breaks
// survive as newline markers so the coercer can still cut a multi-line
// instrument label at its first line.
func (c *Chunker) SplitRows(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell)
		}
	}
	return c.Split(b.String())
}

// boundaries returns the sorted start offsets of every keyword
// occurrence in content.
func (c *Chunker) boundaries(content string) []int {
	var cuts []int
	for _, kw := range c.keywords {
		for from := 0; ; {
			i := strings.Index(content[from:], kw)
			if i < 0 {
				break
			}
			cuts = append(cuts, from+i)
			from += i + len(kw)
		}
	}
	sort.Ints(cuts)
	return cuts
}

// Collapse canonicalizes a chunk: runs of horizontal whitespace become a
// single space and runs of line breaks become a single newline marker.
// The newline survives because the first line of a wrapped instrument
// label is the label; everything after the marker is discarded later.
func Collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space, newline := false, false
	for _, r := range s {
		switch r {
		case '\n':
			newline = true
			space = false
		case ' ', '\t', '\r', '\f', '\v':
			if !newline {
				space = true
			}
		default:
			if b.Len() > 0 {
				if newline {
					b.WriteByte('\n')
				} else if space {
					b.WriteByte(' ')
				}
			}
			space, newline = false, false
			b.WriteRune(r)
		}
	}
	return b.String()
}
