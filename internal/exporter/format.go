package exporter

import (
	"fmt"
)

// formatInt formats a count for export output.
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatUSD formats a currency amount with exactly 2 decimal places, so
// values like 13.4 appear as 13.40 in the export.
func formatUSD(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats a fraction as a fixed-decimal percentage string,
// e.g. formatPercent(0.2, 2) == "20.00%".
func formatPercent(f float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, f*100)
}
