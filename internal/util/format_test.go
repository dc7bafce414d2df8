package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		expected string
	}{
		{name: "zero", ms: 0, expected: "00:00:00"},
		{name: "sub-second truncates", ms: 999, expected: "00:00:00"},
		{name: "ninety minutes", ms: 90 * 60 * 1000, expected: "01:30:00"},
		{name: "mixed", ms: (3*3600 + 4*60 + 5) * 1000, expected: "03:04:05"},
		{name: "more than a day", ms: 26 * 3600 * 1000, expected: "26:00:00"},
		{name: "negative clamps", ms: -5000, expected: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHMS(tt.ms))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatMinutes(0))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "0h 0m", FormatMinutes(-3))
	assert.Equal(t, "50%", FormatPercent(50))
}

func TestDisplayHelpers(t *testing.T) {
	assert.Equal(t, 2, GetDisplayWidth("🧠"))
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abc…", Truncate("abcdef", 4))
	assert.Equal(t, "[██░░]", CreateProgressBar(50, 6))
	assert.Equal(t, "[░░░░]", CreateProgressBar(-10, 6))
	assert.Equal(t, "[████]", CreateProgressBar(250, 6))
}
