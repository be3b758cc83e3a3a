// Package locator decides whether a rendered statement page participates
// in the stock transaction section and isolates the text sub-range that
// holds the transaction rows. Marker strings are injectable so statement
// format variants can be supported without code changes.
package locator

import "strings"

// MarkerSet holds the fixed literals that frame the transaction section
// for one statement locale.
type MarkerSet struct {
	// Section identifies the transactions table; a page without it
	// contributes no records.
	Section string
	// ColumnHeader is the last header token of the table. The sub-range
	// starts right after it when present.
	ColumnHeader string
	// Subtotal is the preferred terminal marker.
	Subtotal string
	// NextSection is the fallback terminal marker, the header of the
	// statement section that follows the transactions table.
	NextSection string
	// BuyKeyword and SellKeyword are the localized action tokens that
	// open each transaction row.
	BuyKeyword  string
	SellKeyword string
}

// DefaultMarkers returns the marker set for the Hong Kong retail
// statement layout the extractor was built against.
func DefaultMarkers() MarkerSet {
	return MarkerSet{
		Section:      "交易-股票和股票期權",
		ColumnHeader: "淨變動",
		Subtotal:     "小計",
		NextSection:  "現金結餘",
		BuyKeyword:   "買入開倉",
		SellKeyword:  "賣出平倉",
	}
}

// Keywords returns the action keywords in a fixed order for chunking.
func (m MarkerSet) Keywords() []string {
	return []string{m.BuyKeyword, m.SellKeyword}
}

// Locator scans page text for the transaction section.
type Locator struct {
	markers MarkerSet
}

// New creates a locator for the given marker set.
func New(markers MarkerSet) *Locator {
	return &Locator{markers: markers}
}

// Markers returns the marker set this locator was built with.
func (l *Locator) Markers() MarkerSet {
	return l.markers
}

// ContainsSection reports whether the page participates in the
// transaction section at all.
func (l *Locator) ContainsSection(pageText string) bool {
	return strings.Contains(pageText, l.markers.Section)
}

// Locate returns the sub-range of content relevant to transactions.
// The preferred range is strictly between the last column-header token
// and the subtotal label. Missing markers widen the range instead of
// failing: no header means start of content, no terminal means the next
// section header, and failing that the end of content. Downstream
// recognition rejects whatever noise the wider range lets through.
func (l *Locator) Locate(content string) string {
	start := 0
	if i := strings.Index(content, l.markers.ColumnHeader); i >= 0 {
		start = i + len(l.markers.ColumnHeader)
	}

	rest := content[start:]
	end := len(rest)
	if i := strings.Index(rest, l.markers.Subtotal); i >= 0 {
		end = i
	} else if i := strings.Index(rest, l.markers.NextSection); i >= 0 {
		end = i
	}

	return rest[:end]
}
