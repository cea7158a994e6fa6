// Package format turns raw order values into display strings.
package format

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const shortDateLayout = "Jan 2, 2006"

var (
	printer = message.NewPrinter(language.AmericanEnglish)

	dateLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// Date renders an ISO-8601 timestamp as "Jan 2, 2006" in local time. Empty
// input yields "" and unparseable input is returned unchanged.
func Date(value string) string {
	return dateIn(value, time.Local)
}

func dateIn(value string, loc *time.Location) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := parseDate(strings.TrimSpace(value), loc)
	if !ok {
		return value
	}
	return t.Format(shortDateLayout)
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts[:2] {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range dateLayouts[2:] {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Currency formats an optional amount as US dollars; nil yields "".
func Currency(amount *float64) string {
	if amount == nil {
		return ""
	}
	return USD(*amount)
}

// USD formats amount as "$1,234.50".
func USD(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "$NaN"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + printer.Sprintf("%.2f", amount)
}
