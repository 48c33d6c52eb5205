package entry

import "time"

// Layout is the fixed-width timestamp used on disk.
const Layout = "2006-01-02 15:04:05"

// ParseTime reads a store timestamp in local time.
func ParseTime(v string) (time.Time, error) {
	return time.ParseInLocation(Layout, v, time.Local)
}

// FormatTime writes v with second precision.
func FormatTime(v time.Time) string {
	return v.Format(Layout)
}
