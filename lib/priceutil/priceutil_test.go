package priceutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractRange(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"Tickets $20-$65", "$20-$65", true},
		{"Tickets $20 - $65", "$20-$65", true},
		{"Tickets $20–$65", "$20-$65", true},
		{"$20-65", "$20-$65", true},
		{"Starting at $5", "$5+", true},
		{"from $25", "$25+", true},
		{"Price: $35", "$35", true},
		{"$12.50", "$12.50", true},
		{"$12.50-$30.00", "$12.50-$30.00", true},
		{"no price info", "", false},
		{"", "", false},
	}

	for _, test := range testCases {
		got, ok := ExtractRange(test.input)
		require.Equal(t, test.ok, ok, "input: %q", test.input)
		require.Equal(t, test.expected, got, "input: %q", test.input)
	}
}

// a two-sided range anywhere in the text beats every other pattern
func TestExtractRangePrecedence(t *testing.T) {
	got, ok := ExtractRange("Tickets $20-$65, rush $10")
	require.True(t, ok)
	require.Equal(t, "$20-$65", got)

	got, ok = ExtractRange("Starting at $5, student rush $3-$4")
	require.True(t, ok)
	require.Equal(t, "$3-$4", got)
}
