package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "日": time.Sunday,
	"mon": time.Monday, "月": time.Monday,
	"tue": time.Tuesday, "火": time.Tuesday,
	"wed": time.Wednesday, "水": time.Wednesday,
	"thu": time.Thursday, "木": time.Thursday,
	"fri": time.Friday, "金": time.Friday,
	"sat": time.Saturday, "土": time.Saturday,
}

// ParseWeekdays reads a comma separated list like "sat,sun", "土,日" or "0,6"
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var out []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		wd, ok := weekdayNames[part]
		if !ok && len(part) > 3 {
			wd, ok = weekdayNames[part[:3]]
		}
		if !ok {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 || n > 6 {
				return nil, fmt.Errorf("unknown weekday %q", part)
			}
			wd = time.Weekday(n)
		}
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	return out, nil
}

// FormatWeekdays renders days as Japanese labels, "-" when empty
func FormatWeekdays(days []time.Weekday) string {
	labels := []string{"日", "月", "火", "水", "木", "金", "土"}
	parts := make([]string, len(days))
	for i, wd := range days {
		parts[i] = labels[wd]
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}
