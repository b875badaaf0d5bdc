package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateFormats is the ordered list of accepted date layouts. First match wins,
// so ambiguous day/month values resolve to the earlier layout (US before EU).
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-2006",
	"02-01-2006",
}

// dateSentinels are values that mean "no usable date" regardless of layout.
var dateSentinels = map[string]bool{
	"":             true,
	"invalid_date": true,
	"null":         true,
	"none":         true,
}

// numericSentinels are values that mean "no usable number".
var numericSentinels = map[string]bool{
	"":     true,
	"null": true,
	"none": true,
}

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseDate parses a date string against the fixed layout precedence list.
// The result is normalized to UTC midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if dateSentinels[strings.ToLower(value)] {
		return time.Time{}, fmt.Errorf("invalid or missing date: %q", value)
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return Midnight(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %q", value)
}

// ParseAmount parses a numeric string after stripping currency symbols,
// thousands separators, and embedded spaces.
func ParseAmount(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if numericSentinels[strings.ToLower(value)] {
		return 0, fmt.Errorf("missing numeric value")
	}

	cleaned := amountReplacer.Replace(value)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse number: %q", value)
	}

	return f, nil
}

// Midnight truncates a timestamp to its calendar date at UTC midnight.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
