package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hayasakashogo/worklog/internal/worktime"
)

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// clockValue stores an optional clock as HH:MM or NULL
func clockValue(c *worktime.Clock) interface{} {
	if c == nil {
		return nil
	}
	return c.String()
}

// parseClock reads an optional HH:MM[:SS] column
func parseClock(s sql.NullString) (*worktime.Clock, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	c, err := worktime.ParseClock(s.String)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func boolValue(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}

func parseBool(n sql.NullBool) *bool {
	if !n.Valid {
		return nil
	}
	v := n.Bool
	return &v
}

// formatWeekdays stores a weekday set as "0,6"
func formatWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, 2)
	if strings.TrimSpace(s) == "" {
		return days, nil
	}
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
