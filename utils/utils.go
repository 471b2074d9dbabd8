package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseClock converts a zero-padded "HH:MM" string to minutes after midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err := strconv.Atoi(s[0:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(s[3:5])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// FormatClock converts minutes after midnight to a "HH:MM" string.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// IsValidClock reports whether s is a well-formed "HH:MM" time.
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NormalizeDate(d), nil
}

// NormalizeDate truncates a timestamp to midnight UTC so that dates compare
// and store consistently regardless of where they were parsed.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SlotStartsAt combines a normalized date with a minutes-after-midnight
// offset into an absolute timestamp.
func SlotStartsAt(date time.Time, minutes int) time.Time {
	return NormalizeDate(date).Add(time.Duration(minutes) * time.Minute)
}

// GenerateBookingReference creates a short human-shareable reference like
// "CB-3F2A9C01BD". Uniqueness is enforced by the reservations table's unique
// index; the vanishingly rare collision surfaces as a retryable storage
// error to the client.
func GenerateBookingReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "CB-" + raw[:10]
}
