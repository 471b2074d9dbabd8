package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"08:00", 480, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:30", 0, false},
		{"0930", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}

	for _, tc := range cases {
		minutes, err := ParseClock(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.minutes, minutes, "input %q", tc.in)
		} else {
			assert.Error(t, err, "input %q", tc.in)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, clock := range []string{"00:00", "08:00", "09:30", "17:45", "23:59"} {
		minutes, err := ParseClock(clock)
		require.NoError(t, err)
		assert.Equal(t, clock, FormatClock(minutes))
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("07-09-2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestNormalizeDate(t *testing.T) {
	in := time.Date(2026, 9, 7, 18, 22, 3, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), NormalizeDate(in))
}

func TestSlotStartsAt(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 9, 7, 9, 30, 0, 0, time.UTC), SlotStartsAt(date, 570))
}

func TestGenerateBookingReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()
		assert.True(t, strings.HasPrefix(ref, "CB-"))
		assert.Len(t, ref, 13)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
