package helpers

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a time-ordered UUIDv7 string, so ids sort by creation time.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Now returns the current UTC time at millisecond precision, the resolution
// timestamps are persisted with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// ISOTimeLayout is the fixed-width ISO-8601 layout used for stored timestamps;
// fixed width keeps lexical order equal to chronological order.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// FormatISO formats t in UTC with ISOTimeLayout.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOTimeLayout)
}

// ParseISO parses a stored timestamp, accepting any RFC 3339 variant as well.
func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(ISOTimeLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
