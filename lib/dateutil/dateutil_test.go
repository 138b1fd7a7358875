package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pin the clock so year-less dates resolve deterministically
func pinYear(t *testing.T, year int) {
	old := timeNow
	timeNow = func() time.Time {
		return time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	t.Cleanup(func() { timeNow = old })
}

func TestParseDate(t *testing.T) {
	pinYear(t, 2025)

	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"Nov 14, 2025", "2025-11-14", true},
		{"November 14, 2025", "2025-11-14", true},
		{"2025-11-14", "2025-11-14", true},
		{"2025-11-14T19:00:00-05:00", "2025-11-14", true},
		{"Opening night is Feb 21, 2025 at 8pm", "2025-02-21", true},
		{"Feb 21", "2025-02-21", true},
		{"March 3rd, 2025", "2025-03-03", true},
		{"11/14/2025", "2025-11-14", true},
		{"", "", false},
		{"to be announced", "", false},
	}

	for _, test := range testCases {
		got, ok := ParseDate(test.input)
		require.Equal(t, test.ok, ok, "input: %q", test.input)
		require.Equal(t, test.expected, got, "input: %q", test.input)
	}
}

func TestParseDateIdempotent(t *testing.T) {
	iso, ok := ParseDate("Nov 14, 2025")
	require.True(t, ok)

	again, ok := ParseDate(iso)
	require.True(t, ok)
	require.Equal(t, iso, again)
}

func TestParseDateRange(t *testing.T) {
	pinYear(t, 2025)

	testCases := []struct {
		input string
		start string
		end   string
	}{
		{"Feb 21 - Mar 29, 2025", "2025-02-21", "2025-03-29"},
		{"Feb 21, 2025 to Mar 29, 2025", "2025-02-21", "2025-03-29"},
		{"Feb 21 through Mar 29", "2025-02-21", "2025-03-29"},
		{"Feb 21 – Mar 29, 2025", "2025-02-21", "2025-03-29"},
		{"", "", ""},
	}

	for _, test := range testCases {
		start, end := ParseDateRange(test.input)
		require.Equal(t, test.start, start, "input: %q", test.input)
		require.Equal(t, test.end, end, "input: %q", test.input)
	}
}

func TestParseDateRangeOrdering(t *testing.T) {
	pinYear(t, 2025)

	start, end := ParseDateRange("Feb 21 - Mar 29, 2025")
	require.True(t, start <= end)
}

func TestParseDateRangeSingleDate(t *testing.T) {
	pinYear(t, 2025)

	single, ok := ParseDate("Nov 14, 2025")
	require.True(t, ok)

	start, end := ParseDateRange("Nov 14, 2025")
	require.Equal(t, single, start)
	require.Equal(t, single, end)
}

func TestParseDateRangePartial(t *testing.T) {
	pinYear(t, 2025)

	// the right side is prose, the left side should still come through
	start, end := ParseDateRange("Feb 21, 2025 to whenever we feel like it")
	require.Equal(t, "2025-02-21", start)
	require.Equal(t, "", end)
}
