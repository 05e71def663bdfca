package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders a duration as M:SS, or H:MM:SS for long sets.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSeconds renders a track length in seconds as M:SS. Unknown lengths
// (zero) render as a placeholder.
func FormatSeconds(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}
	return FormatDuration(time.Duration(seconds) * time.Second)
}

// FormatDownloads renders a download count with thousands separators.
func FormatDownloads(n int) string {
	return humanize.Comma(int64(n))
}

// FormatRating renders an average rating like "4.2" or empty when unrated.
func FormatRating(r float64) string {
	if r <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", r)
}
