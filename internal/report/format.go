package report

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount with two decimal places and thousands
// separators, e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	return currencyPrinter.Sprintf("$%v", number.Decimal(amount, number.Scale(2)))
}

// FormatDate renders a timestamp as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
