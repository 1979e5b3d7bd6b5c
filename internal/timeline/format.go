package timeline

import (
	"fmt"
	"math"
)

// FormatMillis renders "245ms", "1.5s", "1m 30s". Rounding carries into the
// minute count (119999 is "2m", never "1m 60s"); negative means unknown.
func FormatMillis(ms int64) string {
	switch {
	case ms < 0:
		return "N/A"
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60000:
		secs := math.Round(float64(ms)/100) / 10
		if secs >= 60 {
			return "1m"
		}
		if secs == math.Trunc(secs) {
			return fmt.Sprintf("%ds", int64(secs))
		}
		return fmt.Sprintf("%.1fs", secs)
	default:
		minutes := ms / 60000
		seconds := int64(math.Round(float64(ms%60000) / 1000))
		if seconds == 60 {
			minutes++
			seconds = 0
		}
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
}
