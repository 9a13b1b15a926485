package timefmt_test

import (
	"testing"
	"time"

	"focusflow/internal/platform/timefmt"
)

func TestClockPadsMinutesAndSeconds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{60, "01:00"},
		{1500, "25:00"},
		{3599, "59:59"},
		{3661, "61:01"},
		{-10, "00:00"},
	}
	for _, tc := range cases {
		if got := timefmt.Clock(tc.seconds); got != tc.want {
			t.Fatalf("Clock(%d): want %s, got %s", tc.seconds, tc.want, got)
		}
	}
}

func TestDateKeyUsesCalendarDay(t *testing.T) {
	t.Parallel()
	moment := time.Date(2026, 3, 5, 23, 59, 59, 0, time.UTC)
	if got := timefmt.DateKey(moment); got != "2026-03-05" {
		t.Fatalf("want 2026-03-05, got %s", got)
	}
}

func TestFromMillisRoundTrip(t *testing.T) {
	t.Parallel()
	moment := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)
	if got := timefmt.FromMillis(moment.UnixMilli()); !got.Equal(moment) {
		t.Fatalf("want %v, got %v", moment, got)
	}
}
