package constants

import "time"

const (
	// Trailing windows, in local days, ending today.
	WeeklyWindowDays = 7
	StreakWindowDays = 120

	// Dashboard recompute cadence. Ticks only re-read "now".
	TickInterval = time.Second

	MillisPerMinute = int64(time.Minute / time.Millisecond)

	DayKeyLayout = "2006-01-02"
)

// StateVersion is written into every persisted state document.
const StateVersion = 2
