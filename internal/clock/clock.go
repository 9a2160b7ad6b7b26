// Package clock converts between elapsed-time strings ("H:MM:SS") and
// integer seconds.
package clock

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts a colon-separated elapsed-time string to seconds.
// One, two, or three fields are read right-to-left as seconds, minutes,
// hours: "1:02:03" → 3723, "5:30" → 330, "45" → 45. Malformed input
// returns 0 so a single corrupt row never aborts a whole match.
func ParseClock(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// FormatClock renders seconds as "H:MM:SS" with unpadded hours. Exact
// inverse of ParseClock for non-negative inputs.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
