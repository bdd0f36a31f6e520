package report

import (
	"fmt"
	"strings"
)

// FormatDuration renders elapsed seconds as a human-readable string like
// "1 day, 1 hour, 1 minute, 1.50 seconds". Zero-valued components are
// omitted, except that seconds always appear when nothing else does
// ("0.00 seconds"). Units are singular at exactly one.
func FormatDuration(elapsed float64) string {
	days := int(elapsed / 86400)
	elapsed -= float64(days) * 86400
	hours := int(elapsed / 3600)
	elapsed -= float64(hours) * 3600
	minutes := int(elapsed / 60)
	seconds := elapsed - float64(minutes)*60

	var parts []string
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}
	if seconds > 0 || len(parts) == 0 {
		unit := "seconds"
		if seconds == 1 {
			unit = "second"
		}
		parts = append(parts, fmt.Sprintf("%.2f %s", seconds, unit))
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
