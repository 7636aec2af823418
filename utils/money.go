package utils

import (
	"strconv"
	"strings"

	"happywrap-deck/models"
)

// FormatRupees formats a whole-rupee amount as "₹50000".
// Budgets are entered as integers and printed without grouping.
func FormatRupees(amount int64) string {
	if amount < 0 {
		return "-₹" + strconv.FormatInt(-amount, 10)
	}
	return "₹" + strconv.FormatInt(amount, 10)
}

// FormatDeadline formats a date as "05 Jan 2025", or "N/A" when unset
func FormatDeadline(d models.Date) string {
	if d.IsZero() {
		return NotAvailable
	}
	return d.Format("02 Jan 2006")
}

// NotAvailable is printed for missing optional values
const NotAvailable = "N/A"

// OrNA returns s, or "N/A" when s is blank
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}

// YesNo renders a flag the way the requirements slide prints it
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
