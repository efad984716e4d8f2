package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PesoSign is the currency marker used in stored quantity_received strings.
const PesoSign = "₱"

// AmountKind distinguishes cash amounts from physical-good quantities.
type AmountKind string

const (
	AmountCurrency AmountKind = "currency"
	AmountQuantity AmountKind = "quantity"
)

// Amount is the decoded form of a quantity_received string. The database
// stores amounts inline as "₱1000" or "5 kg"; every consumer works with this
// struct instead of re-parsing the string at each call site.
type Amount struct {
	Kind  AmountKind      `json:"kind"`
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit,omitempty"`
}

// Currency builds a cash Amount.
func Currency(value decimal.Decimal) Amount {
	return Amount{Kind: AmountCurrency, Value: value}
}

// Quantity builds a physical-good Amount with its unit (e.g. "kg", "sacks").
func Quantity(value decimal.Decimal, unit string) Amount {
	return Amount{Kind: AmountQuantity, Value: value, Unit: unit}
}

// ParseAmount decodes a stored quantity_received string. A leading peso sign
// marks a currency amount; otherwise the substring before the first space is
// the numeric value and the rest is the unit. Malformed input decodes to a
// zero quantity rather than an error: a bad row contributes nothing to sums
// and fails every predicate, it never aborts a scan.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, PesoSign); ok {
		value, err := decimal.NewFromString(strings.TrimSpace(rest))
		if err != nil {
			return Currency(decimal.Zero)
		}
		return Currency(value)
	}

	numPart, unit, _ := strings.Cut(s, " ")
	value, err := decimal.NewFromString(numPart)
	if err != nil {
		return Quantity(decimal.Zero, strings.TrimSpace(unit))
	}
	return Quantity(value, strings.TrimSpace(unit))
}

// Encode renders the Amount in the stored wire format: "₱1000" for currency,
// "5 kg" for quantities ("5" when the unit is blank).
func (a Amount) Encode() string {
	if a.Kind == AmountCurrency {
		return PesoSign + a.Value.String()
	}
	if a.Unit == "" {
		return a.Value.String()
	}
	return a.Value.String() + " " + a.Unit
}

// IsZero reports whether the amount carries no value.
func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

var displayPrinter = message.NewPrinter(language.English)

// Display renders the Amount for API responses: currency with thousands
// grouping ("₱4,000"), quantities as "50 kg".
func (a Amount) Display() string {
	if a.Kind == AmountCurrency {
		f, _ := a.Value.Float64()
		return PesoSign + displayPrinter.Sprintf("%v", number.Decimal(f))
	}
	if a.Unit == "" {
		return a.Value.String()
	}
	return a.Value.String() + " " + a.Unit
}
