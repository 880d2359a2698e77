package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{65, "01:05"},
		{5, "00:05"},
		{0, "00:00"},
		{25 * 60, "25:00"},
		{59, "00:59"},
		{6000, "100:00"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatClock(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain number", "25", 25},
		{"surrounding spaces", " 5 ", 5},
		{"zero", "0", 0},
		{"empty", "", 0},
		{"letters", "abc", 0},
		{"decimal", "2.5", 0},
		{"negative", "-4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMinutes(tt.raw))
		})
	}
}

func TestMinutesToSeconds(t *testing.T) {
	assert.Equal(t, 1500, MinutesToSeconds(25))
	assert.Equal(t, 0, MinutesToSeconds(0))
	assert.Equal(t, 0, MinutesToSeconds(-1))
}
