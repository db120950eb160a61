package utils

import (
	"fmt"
	"time"
)

// timestampLayout is the human-readable format applied to every timestamp
// the API returns.
const timestampLayout = "2006-01-02 15:04:05"

// FormatPrice renders a listing price as a fixed two-decimal currency
// string, e.g. 12.5 -> "$12.50". Every read path goes through this so the
// representation never drifts between endpoints.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatTimestamp renders a timestamp in the API's fixed human-readable
// format.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
