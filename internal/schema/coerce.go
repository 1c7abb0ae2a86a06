package schema

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date layouts seen in the wild across differently-authored workbooks.
// excelize formats date cells according to their cell style, so several
// conventions have to be tolerated.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02.01.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// excel serial day 0 is 1899-12-30 in the 1900 date system
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDate coerces a cell to a date, permissively. Unparseable values
// report ok=false rather than failing the pipeline. Results are normalized
// to midnight UTC so day arithmetic stays exact.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return midnightUTC(t), true
		}
	}
	// Raw numeric cells holding dates come through as Excel serial numbers.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 59 && serial < 200000 {
		return midnightUTC(excelEpoch.AddDate(0, 0, int(serial))), true
	}
	return time.Time{}, false
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseNumber coerces a cell to a float, tolerating thousands separators.
// Unparseable values report ok=false; quantity fields then default to 0.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseMoney coerces a cell to a decimal amount. Money stays in decimal so
// pivot totals conserve the source amounts exactly.
func parseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
