// Package recognizer matches a candidate chunk against the transaction
// grammar and extracts the raw field substrings. It performs no numeric
// parsing and no boundary detection; both belong to its neighbours.
package recognizer

import (
	"fmt"
	"regexp"

	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
)

// RawTransaction holds the untyped field substrings of one recognized
// transaction. First and Second are the two unordered numeric tokens
// whose quantity/price roles the coercer resolves.
type RawTransaction struct {
	ActionKeyword string
	Label         string
	Currency      string // empty when the chunk carried no currency code
	First         string
	Second        string
	Amount        string
	NetChange     string
}

// numeric accepts digit-grouping separators and an optional leading
// sign. The sign is lenient on every field; the data model narrows it
// again during coercion.
const numeric = `[+-]?[0-9][0-9,]*(?:\.[0-9]+)?`

// Recognizer matches candidate chunks against the grammar
// <Action> <Label> <CCY> <Num> <Num> <SignedNum> <SignedNum>.
type Recognizer struct {
	re *regexp.Regexp
}

// New builds a recognizer for the action keywords of the given marker
// set. The label is the shortest token run between the action keyword
// and the currency code, so it can never swallow the currency or the
// numerics that follow. The currency code is optional; trailing columns
// beyond net change are ignored.
func New(markers locator.MarkerSet) *Recognizer {
	pattern := fmt.Sprintf(
		`^(%s|%s)\s+(?s:(.+?))\s+(?:([A-Z]{3})\s+)?(%s)\s+(%s)\s+(%s)\s+(%s)(?:\s|$)`,
		regexp.QuoteMeta(markers.BuyKeyword),
		regexp.QuoteMeta(markers.SellKeyword),
		numeric, numeric, numeric, numeric,
	)
	return &Recognizer{re: regexp.MustCompile(pattern)}
}

// Recognize extracts the raw fields from one candidate chunk. The second
// return is false when the chunk does not encode a transaction; that is
// not an error, simply "nothing recognized here".
func (r *Recognizer) Recognize(chunk string) (RawTransaction, bool) {
	m := r.re.FindStringSubmatch(chunk)
	if m == nil {
		return RawTransaction{}, false
	}
	return RawTransaction{
		ActionKeyword: m[1],
		Label:         m[2],
		Currency:      m[3],
		First:         m[4],
		Second:        m[5],
		Amount:        m[6],
		NetChange:     m[7],
	}, true
}
