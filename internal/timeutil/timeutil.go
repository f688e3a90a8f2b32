// Package timeutil formats durations and clock times for display.
package timeutil

import (
	"fmt"
	"time"
)

const secondsInAMinute = 60

// SecsToMinsAndSecs splits a number of seconds into whole minutes and the
// remaining seconds.
func SecsToMinsAndSecs(secs int) (mins, rem int) {
	if secs < 0 {
		secs = 0
	}

	return secs / secondsInAMinute, secs % secondsInAMinute
}

// FormatRemaining renders seconds as "M:SS remaining".
func FormatRemaining(secs int) string {
	m, s := SecsToMinsAndSecs(secs)

	return fmt.Sprintf("%d:%02d remaining", m, s)
}

// ClockFormat returns the layout for wall clock times.
func ClockFormat(twentyFourHour bool) string {
	if twentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}

// EndTime returns when a running countdown with secs left will finish.
func EndTime(now time.Time, secs int) time.Time {
	return now.Add(time.Duration(secs) * time.Second)
}
