package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SecondsPerMinute converts entered minutes into countdown seconds.
const SecondsPerMinute = 60

// FormatClock renders a second count as zero-padded MM:SS.
// Minutes are not wrapped into hours, so 6000 seconds renders as "100:00".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/SecondsPerMinute, seconds%SecondsPerMinute)
}

// ParseMinutes reads a minutes value as typed by the user.
// Anything that is not a non-negative integer degrades to 0 instead of
// failing, which makes the affected phase complete on the next tick.
func ParseMinutes(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// MinutesToSeconds converts minutes to seconds, clamping negatives to 0.
func MinutesToSeconds(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes * SecondsPerMinute
}
