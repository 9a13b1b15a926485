package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock returns local time. Date keys bucket sessions by the local
// calendar day, so the clock must not normalize to UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
