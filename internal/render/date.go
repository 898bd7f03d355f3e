package render

import (
	"fmt"
	"math"
	"time"
)

// FormatPublished renders a publish timestamp relative to now. The buckets
// are anchored on the rounded-up whole-day difference: one day reads as
// "Today", two as "Yesterday", up to a week as a day count, anything older
// as an absolute date.
func FormatPublished(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days-1)
	default:
		return ts.Format("January 2, 2006")
	}
}
