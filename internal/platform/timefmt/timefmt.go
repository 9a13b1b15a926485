package timefmt

import (
	"fmt"
	"time"
)

// Clock renders a second count as a zero-padded MM:SS string.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// DateKey buckets a moment by its local calendar day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FromMillis converts a millisecond epoch timestamp to local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// DayTime renders a millisecond timestamp as a local wall-clock time,
// used for distraction log entries.
func DayTime(ms int64) string {
	return time.UnixMilli(ms).Format("15:04:05")
}

// DayDate renders a millisecond timestamp as a local date, used for
// history rows.
func DayDate(ms int64) string {
	return time.UnixMilli(ms).Format("Jan 02, 2006")
}
