// Package money renders decimal values as display currency. It wraps
// go-money for ISO-4217 symbol and fraction handling and keeps
// shopspring/decimal as the arithmetic type everywhere else.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders d as a 2-place currency string, e.g. "$1,234.56".
// Unknown or sentinel currency codes fall back to a plain fixed-point
// rendering.
func FormatAmount(d decimal.Decimal, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		return d.StringFixed(2)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	cents := d.Mul(multiplier).Round(0).IntPart()
	return money.New(cents, currencyCode).Display()
}

// FormatPrice renders d with the currency symbol and four decimal
// places, the precision the statement viewer uses for unit prices.
func FormatPrice(d decimal.Decimal, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		return d.StringFixed(4)
	}
	return currency.Grapheme + d.StringFixed(4)
}

// FormatNetChange renders a sign-carrying 2-place decimal.
func FormatNetChange(d decimal.Decimal) string {
	return d.StringFixed(2)
}
