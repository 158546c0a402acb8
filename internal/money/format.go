package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultSymbol is the currency glyph used when none is configured.
const DefaultSymbol = "₹"

// DefaultLanguage is the locale used when none is configured.
var DefaultLanguage = language.English

// Formatter renders amounts for display with locale-specific grouping and a
// currency glyph. Formatting never changes the stored value.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter returns a Formatter for the given locale and currency glyph.
func NewFormatter(tag language.Tag, symbol string) *Formatter {
	return &Formatter{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Format renders m, e.g. "₹1,500.00" or "-₹20.50".
func (f *Formatter) Format(m Money) string {
	s := f.printer.Sprint(number.Decimal(m.Abs().Major(), number.Scale(2)))
	if m < 0 {
		return "-" + f.symbol + s
	}
	return f.symbol + s
}

// Format renders m with the default locale and glyph.
func Format(m Money) string {
	return NewFormatter(DefaultLanguage, DefaultSymbol).Format(m)
}
