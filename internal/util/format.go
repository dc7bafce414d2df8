package util

import "fmt"

// FormatHMS renders a millisecond duration as zero-padded HH:MM:SS.
// Negative inputs render as 00:00:00; hours are not wrapped at 24.
func FormatHMS(ms int64) string {
	total := ms / 1000
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMinutes renders whole minutes as "Xh Ym" (the weekly summary format).
func FormatMinutes(minutes int64) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatPercent formats a 0-100 integer percentage.
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}
