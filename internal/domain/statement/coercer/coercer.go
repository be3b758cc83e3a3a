// Package coercer converts the raw field substrings of a recognized
// transaction into a typed TransactionRecord. Its hardest job is
// assigning the two positionally-unordered numeric tokens to quantity
// and price using only their literal surface form: the token that
// carries a decimal separator is the price. An ambiguous pair rejects
// the whole record rather than risking a silent misassignment.
package coercer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stmtx/statement-extractor/internal/domain/statement"
	"github.com/stmtx/statement-extractor/internal/domain/statement/locator"
	"github.com/stmtx/statement-extractor/internal/domain/statement/recognizer"
)

// Rejection reasons. They never surface to callers individually; the
// service counts them and moves on to the next candidate.
var (
	ErrAmbiguousPair   = errors.New("quantity/price pair is ambiguous")
	ErrInvalidNumber   = errors.New("numeric field failed to parse")
	ErrNegativeField   = errors.New("quantity and price must be non-negative")
	ErrUnknownAction   = errors.New("action keyword is not a known literal")
	ErrFractionalShare = errors.New("quantity literal is fractional")
)

// Options tunes the coercer's two hardening switches.
type Options struct {
	// StrictFieldOrder pins the first unordered token to quantity and
	// the second to price instead of applying the decimal-separator
	// heuristic. Use it when the source format guarantees column order.
	StrictFieldOrder bool
	// RejectUnknownAction rejects candidates whose action keyword is
	// neither the buy nor the sell literal. When false, anything that is
	// not the sell keyword coerces to Buy, mirroring the historical
	// statement behavior.
	RejectUnknownAction bool
}

// Coercer turns raw transactions into records.
type Coercer struct {
	markers locator.MarkerSet
	opts    Options
}

// New creates a coercer for the given marker set.
func New(markers locator.MarkerSet, opts Options) *Coercer {
	return &Coercer{markers: markers, opts: opts}
}

// Coerce builds a fully populated record or rejects the candidate. There
// is no partial result: any parse failure rejects the whole record.
func (c *Coercer) Coerce(raw recognizer.RawTransaction) (statement.TransactionRecord, error) {
	action, err := c.coerceAction(raw.ActionKeyword)
	if err != nil {
		return statement.TransactionRecord{}, err
	}

	qtyStr, priceStr, err := c.disambiguate(raw.First, raw.Second)
	if err != nil {
		return statement.TransactionRecord{}, err
	}

	quantity, err := parseQuantity(qtyStr)
	if err != nil {
		return statement.TransactionRecord{}, err
	}

	price, err := parseDecimal(priceStr)
	if err != nil {
		return statement.TransactionRecord{}, err
	}
	if price.IsNegative() {
		return statement.TransactionRecord{}, ErrNegativeField
	}

	amount, err := parseDecimal(raw.Amount)
	if err != nil {
		return statement.TransactionRecord{}, err
	}
	netChange, err := parseDecimal(raw.NetChange)
	if err != nil {
		return statement.TransactionRecord{}, err
	}

	currency := raw.Currency
	if currency == "" {
		currency = statement.CurrencyUnknown
	}

	return statement.TransactionRecord{
		Action:          action,
		InstrumentLabel: firstLine(raw.Label),
		Currency:        currency,
		Quantity:        quantity,
		Price:           price,
		Amount:          amount,
		NetChange:       netChange,
	}, nil
}

func (c *Coercer) coerceAction(keyword string) (statement.Action, error) {
	if keyword == c.markers.SellKeyword {
		return statement.ActionSell, nil
	}
	if c.opts.RejectUnknownAction && keyword != c.markers.BuyKeyword {
		return "", ErrUnknownAction
	}
	return statement.ActionBuy, nil
}

// disambiguate resolves which token is quantity and which is price.
// Exactly one of the pair must carry a decimal separator; that one is
// the price. Both-or-neither is an explicit rejection, never a guess.
func (c *Coercer) disambiguate(first, second string) (qty, price string, err error) {
	if c.opts.StrictFieldOrder {
		return first, second, nil
	}
	firstDecimal := strings.Contains(first, ".")
	secondDecimal := strings.Contains(second, ".")
	switch {
	case firstDecimal && !secondDecimal:
		return second, first, nil
	case secondDecimal && !firstDecimal:
		return first, second, nil
	default:
		return "", "", ErrAmbiguousPair
	}
}

// parseQuantity coerces a whole-share count. A fractional or negative
// literal is treated as a disambiguation failure rather than truncated.
func parseQuantity(s string) (int64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	if strings.Contains(s, ".") {
		return 0, ErrFractionalShare
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	if n < 0 {
		return 0, ErrNegativeField
	}
	return n, nil
}

// parseDecimal strips digit-grouping separators and parses a
// sign-carrying decimal preserving the printed precision.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "+")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidNumber
	}
	return d, nil
}

// firstLine cuts a multi-line instrument label at its first line-break
// marker; trailing lines are discarded.
func firstLine(label string) string {
	if i := strings.IndexByte(label, '\n'); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label)
}
