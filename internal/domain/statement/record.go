// Package statement defines the core types shared by the statement
// extraction pipeline: the transaction record, the trade action enum, and
// the document-level status and error values.
package statement

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Action indicates trade direction.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
)

// CurrencyUnknown is the sentinel used when a transaction carries no
// recognizable 3-letter currency code.
const CurrencyUnknown = "N/A"

// TransactionRecord is a fully validated stock trade extracted from a
// statement. Records are immutable once constructed; a record is either
// completely populated or never created at all.
type TransactionRecord struct {
	Action          Action          `json:"action"`
	InstrumentLabel string          `json:"instrument_label"`
	Currency        string          `json:"currency"`
	Quantity        int64           `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Amount          decimal.Decimal `json:"amount"`
	NetChange       decimal.Decimal `json:"net_change"`
}

// Status reports whether an extraction produced any records.
type Status string

const (
	// StatusFound means at least one transaction was recognized.
	StatusFound Status = "found"
	// StatusNotFound means the document parsed fine but no transaction
	// section or records were recognized. This is not an error.
	StatusNotFound Status = "not_found"
)

// ErrUnreadableDocument means the input bytes could not be opened as the
// expected document container at all. It is the only failure that
// propagates to the caller; everything narrower is swallowed per
// candidate.
var ErrUnreadableDocument = errors.New("document could not be read")
