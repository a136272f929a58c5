// Package currency formats rupee amounts for reports and digests.
package currency

import "github.com/dustin/go-humanize"

// Format renders an amount as "Rs. 1,234,567.89", rounded to paise. The
// ASCII prefix keeps the output printable in core PDF fonts. Amounts must
// stay below 9.2e18, which every stored report does.
func Format(v float64) string {
	return "Rs. " + humanize.FormatFloat("#,###.##", v)
}
