package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays [YEAR|YYYY-MM]",
	Short: "List Japanese national holidays",
	Long: `List national holidays for a year or a month, including substitute
holidays and entries from the holidays override file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		months, err := holidayMonths(args, time.Now())
		if err != nil {
			return err
		}

		count := 0
		for _, ym := range months {
			for _, h := range appInstance.Holidays.MonthHolidays(ym.year, ym.month) {
				fmt.Printf("%s (%s)  %s\n", worktime.DateKey(h.Date), calendar.WeekdayLabel(h.Date), h.Name)
				count++
			}
		}

		if count == 0 {
			fmt.Println("No holidays found")
		}
		return nil
	},
}

type yearMonth struct {
	year  int
	month time.Month
}

func holidayMonths(args []string, now time.Time) ([]yearMonth, error) {
	if len(args) == 0 {
		return yearOf(now.Local().Year()), nil
	}
	input := strings.TrimSpace(args[0])
	if len(input) == 4 {
		y, err := strconv.Atoi(input)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", input)
		}
		return yearOf(y), nil
	}

	y, m, err := parseMonth(args, now)
	if err != nil {
		return nil, err
	}
	return []yearMonth{{y, m}}, nil
}

func yearOf(y int) []yearMonth {
	out := make([]yearMonth, 12)
	for i := range out {
		out[i] = yearMonth{y, time.Month(i + 1)}
	}
	return out
}
