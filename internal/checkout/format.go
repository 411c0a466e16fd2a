package checkout

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders amounts as display currency strings for a locale. The
// symbol and locale are configuration, not behavior the engine hardcodes.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a Formatter for the given BCP 47 locale and currency
// symbol. An unparseable locale falls back to en-US.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if symbol == "" {
		symbol = "$"
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Format renders amount with two fraction digits and locale-aware grouping,
// e.g. $35.00 or $1,234.50 for en-US.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.printer.Sprintf("%s%v", f.symbol,
		number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
