package locale

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/koustreak/odbcenv/internal/errs"
)

// ParseDecimal parses numeric text formatted with s's conventions, e.g.
// "$1,234.50" under the defaults or "1.234,50" with a ',' decimal point.
// Group separators, the currency symbol and surrounding space are ignored.
func (s State) ParseDecimal(text string) (decimal.Decimal, error) {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.TrimSpace(text) {
		switch {
		case r == s.DecimalPoint:
			b.WriteByte('.')
		case r == s.GroupSeparator, r == s.CurrencySymbol, unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, errs.Wrap(errs.KindData, "invalid decimal text "+strconv.Quote(text), err)
	}
	return d, nil
}

// ParseDecimal parses text with the process-wide State.
func ParseDecimal(text string) (decimal.Decimal, error) {
	return Current().ParseDecimal(text)
}

