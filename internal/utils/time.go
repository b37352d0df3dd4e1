package utils

import "time"

// Timestamps are stored as RFC 3339 TEXT in both sqlite and postgres so
// the same values round-trip identically through either driver.

// NowUTC returns the current time in UTC truncated to whole seconds,
// matching the precision of stored timestamps.
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatTime renders t as an RFC 3339 UTC string for storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime parses an RFC 3339 timestamp read back from storage.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
