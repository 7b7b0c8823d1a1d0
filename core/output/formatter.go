// Package output renders policy amounts and lookup results.
// Formatting is pure and total: it never fails.
package output

import (
	"math"

	"github.com/shopspring/decimal"

	"policy-lookup/core/types"
)

const (
	// DefaultUnit is appended to every formatted amount
	DefaultUnit = "만원"

	// DefaultPlaceholder stands in for missing amounts
	DefaultPlaceholder = "-"
)

// integerEpsilon is how close to a whole number an amount must be to print
// without decimals
var integerEpsilon = decimal.New(1, -9)

// AmountFormatter formats policy amounts
type AmountFormatter struct {
	// Unit is the suffix appended after a space
	Unit string

	// Placeholder is returned for null amounts
	Placeholder string
}

// NewAmountFormatter creates a formatter with the default unit and placeholder
func NewAmountFormatter() *AmountFormatter {
	return &AmountFormatter{
		Unit:        DefaultUnit,
		Placeholder: DefaultPlaceholder,
	}
}

// Format renders an amount: integer-like values with no decimals, others
// with exactly one decimal place, followed by the unit.
func (f *AmountFormatter) Format(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return f.Placeholder
	}
	d := amount.Decimal
	rounded := d.Round(0)

	var text string
	if d.Sub(rounded).Abs().LessThan(integerEpsilon) {
		text = rounded.String()
	} else {
		text = d.StringFixed(1)
	}
	if f.Unit == "" {
		return text
	}
	return text + " " + f.Unit
}

// FormatFloat formats a float amount; NaN and infinities are placeholders
func (f *AmountFormatter) FormatFloat(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return f.Placeholder
	}
	return f.Format(decimal.NewNullDecimal(decimal.NewFromFloat(amount)))
}

// FormatPtr formats an optional float amount; nil is a placeholder
func (f *AmountFormatter) FormatPtr(amount *float64) string {
	if amount == nil {
		return f.Placeholder
	}
	return f.FormatFloat(*amount)
}

// Breakdown is the formatted policy decomposition of one record
type Breakdown struct {
	Base   string `json:"base_policy"`
	Bundle string `json:"bundle_policy"`
	Extra  string `json:"extra_policy"`
	Total  string `json:"total_policy"`
}

// Breakdown formats every amount of a record
func (f *AmountFormatter) Breakdown(rec types.Record) Breakdown {
	return Breakdown{
		Base:   f.Format(rec.BasePolicy),
		Bundle: f.Format(rec.BundlePolicy),
		Extra:  f.Format(rec.ExtraPolicy),
		Total:  f.Format(rec.TotalPolicy),
	}
}

// EmptyBreakdown is shown when nothing resolved
func (f *AmountFormatter) EmptyBreakdown() Breakdown {
	return Breakdown{
		Base:   f.Placeholder,
		Bundle: f.Placeholder,
		Extra:  f.Placeholder,
		Total:  f.Placeholder,
	}
}
