package format

import (
	"fmt"
	"time"
)

// FmtScore renders a unit-interval value with two decimals, the fixed
// precision used for pressure, confidence and urgency everywhere.
func FmtScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FmtTime renders a timestamp at minute precision in UTC.
func FmtTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// Truncate shortens s to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// BoolMark returns "✓" for true and "✗" for false.
func BoolMark(v bool) string {
	if v {
		return "✓"
	}
	return "✗"
}
