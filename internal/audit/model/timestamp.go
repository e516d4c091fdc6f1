package model

import (
	"errors"
	"time"
)

var errTimestampLength = errors.New("timestamp must be exactly 20 characters")

// ParseTimestamp parses value with TimestampLayout and nothing else.
// time.Parse tolerates fractional seconds the layout does not mention,
// so the length is checked first.
func ParseTimestamp(value string) (time.Time, error) {
	if len(value) != len(TimestampLayout) {
		return time.Time{}, errTimestampLength
	}
	return time.Parse(TimestampLayout, value)
}

// FormatTimestamp renders t in TimestampLayout, converted to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
