package util

import "time"

// clockLayout is the hour:minute display form used on chart axes.
const clockLayout = "15:04"

// FormatClock renders t as HH:MM in t's location.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatClockMillis renders an epoch-milliseconds instant as HH:MM local time.
func FormatClockMillis(ms int64) string {
	return FormatClock(time.UnixMilli(ms))
}
