package view

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the unit shown after every amount.
const Currency = "синапсов"

// Priceless is shown in place of an absent price.
const Priceless = "Бесценно"

var numbers = message.NewPrinter(language.Russian)

// FormatNumber formats d with Russian digit grouping. The fractional part
// is kept only when it is non-zero.
func FormatNumber(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign, d = "-", d.Neg()
	}

	whole := d.Truncate(0)
	out := sign + numbers.Sprintf("%d", whole.IntPart())
	if frac := d.Sub(whole); !frac.IsZero() {
		out += "," + strings.TrimPrefix(frac.String(), "0.")
	}
	return out
}

// FormatAmount formats d followed by the currency unit.
func FormatAmount(d decimal.Decimal) string {
	return FormatNumber(d) + " " + Currency
}

// FormatPrice formats a catalog price, or Priceless when absent.
func FormatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return Priceless
	}
	return FormatAmount(p.Decimal)
}
