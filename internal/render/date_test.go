package render

import (
	"testing"
	"time"
)

func TestFormatPublished(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"one day ago", now.AddDate(0, 0, -1), "Today"},
		{"two days ago", now.AddDate(0, 0, -2), "Yesterday"},
		{"five days ago", now.AddDate(0, 0, -5), "4 days ago"},
		{"seven days ago", now.AddDate(0, 0, -7), "6 days ago"},
		{"thirty days ago", now.AddDate(0, 0, -30), "July 24, 2026"},
		{"a few hours ago", now.Add(-3 * time.Hour), "Today"},
	}

	for _, tc := range cases {
		if got := FormatPublished(tc.ts, now); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
