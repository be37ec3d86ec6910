package locale

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formIndex is the position of each plural category in a "one | few | many | other" template.
var formIndex = map[plural.Form]int{
	plural.One:   0,
	plural.Few:   1,
	plural.Many:  2,
	plural.Other: 3,
	plural.Zero:  3,
	plural.Two:   3,
}

// Formatter formats numerals and picks plural forms for one locale.
type Formatter struct {
	lang    language.Tag
	printer *message.Printer
}

// NewFormatter creates a formatter for l.
func NewFormatter(l Locale) *Formatter {
	lang := language.Make(l.String())

	numbering := lang
	if tag, ok := numberingTags[l]; ok {
		numbering = language.Make(tag)
	}

	return &Formatter{
		lang:    lang,
		printer: message.NewPrinter(numbering),
	}
}

// Integer formats n with the locale's digits and grouping.
func (f *Formatter) Integer(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Decimal formats v with at most two fraction digits.
func (f *Formatter) Decimal(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Plural picks the form of a "one | other" or "one | few | many | other"
// template matching the CLDR cardinal category of n.
// Missing trailing forms fall back to the last form given.
func (f *Formatter) Plural(n int, template string) string {
	forms := strings.Split(template, "|")
	for i := range forms {
		forms[i] = strings.TrimSpace(forms[i])
	}

	form := plural.Cardinal.MatchPlural(f.lang, n, 0, 0, 0, 0)
	idx := formIndex[form]
	if idx >= len(forms) {
		idx = len(forms) - 1
	}
	return forms[idx]
}

// Count formats n followed by its plural unit, e.g. "2 days".
func (f *Formatter) Count(n int, template string) string {
	return f.Integer(n) + " " + f.Plural(n, template)
}
