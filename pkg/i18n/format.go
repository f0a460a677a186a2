// Package i18n provides German-locale display formatting for amounts
// shown in the documentation UI and in generated report prompts.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.German)

// FormatEUR formats an amount as a German-locale Euro display string,
// e.g. 1234.5 -> "1.234,50 €".
func FormatEUR(amount float64) string {
	return printer.Sprintf("%v €", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatNumber formats a plain number with German separators and up to
// two fraction digits, e.g. 1234.5 -> "1.234,5".
func FormatNumber(amount float64) string {
	return printer.Sprintf("%v", number.Decimal(amount,
		number.MaxFractionDigits(2),
	))
}

// FormatHours formats an hour count for display, e.g. "65 Std.".
func FormatHours(hours float64) string {
	return printer.Sprintf("%v Std.", number.Decimal(hours,
		number.MaxFractionDigits(1),
	))
}
