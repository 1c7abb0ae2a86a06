package exporter

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatMoney formats a decimal amount with two fixed decimal places
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
