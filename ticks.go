package odbcenv

import (
	"fmt"
	"math"
	"time"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour, Minute, Second int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// TimestampFromTicks converts seconds since the Unix epoch to local time.
// Fractional seconds are kept to the microsecond.
func TimestampFromTicks(ticks float64) time.Time {
	sec, frac := math.Modf(ticks)
	usec := math.Round(frac * 1e6)
	return time.Unix(int64(sec), int64(usec)*int64(time.Microsecond)).In(time.Local)
}

// DateFromTicks returns local midnight of the day containing ticks.
func DateFromTicks(ticks float64) time.Time {
	t := TimestampFromTicks(ticks)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// TimeFromTicks returns the local wall-clock time of ticks, truncated to the
// second.
func TimeFromTicks(ticks float64) TimeOfDay {
	t := time.Unix(int64(ticks), 0).In(time.Local)
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}
