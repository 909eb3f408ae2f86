package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hayasakashogo/worklog/internal/calendar"
	"github.com/hayasakashogo/worklog/internal/service"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

var punchCmd = &cobra.Command{
	Use:   "punch",
	Short: "Punch in and out for today",
	Long:  `Record today's start and end times. Times are floored to five minutes.`,
}

var punchInCmd = &cobra.Command{
	Use:   "in",
	Short: "Punch in now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}

		record, err := appInstance.PunchService.PunchIn(ctx, client.ID, restFlag(cmd))
		if err != nil {
			if errors.Is(err, service.ErrDayOff) {
				return fmt.Errorf("%w (use 'worklog punch on' to work today anyway)", err)
			}
			return fmt.Errorf("failed to punch in: %w", err)
		}

		fmt.Printf("✓ Punched in: %s at %s\n", client.Name, record.StartTime)
		return nil
	},
}

var punchOutCmd = &cobra.Command{
	Use:   "out",
	Short: "Punch out now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}

		record, err := appInstance.PunchService.PunchOut(ctx, client.ID, restFlag(cmd))
		if err != nil {
			return fmt.Errorf("failed to punch out: %w", err)
		}

		hours, _ := record.WorkedHours()
		fmt.Printf("✓ Punched out: %s at %s\n", client.Name, record.EndTime)
		fmt.Printf("  %s - %s, break %s, worked %s\n",
			record.StartTime, record.EndTime,
			worktime.FormatRestMinutes(record.RestMinutes),
			worktime.FormatHoursToHHMM(hours),
		)
		return nil
	},
}

var punchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's punch status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}

		record, status, err := appInstance.PunchService.Today(ctx, client.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		day, _ := worktime.ParseDate(worktime.TodayString(now))
		policy := appInstance.Aggregator.Policy()

		fmt.Printf("%s  %s (%s)\n", client.Name, worktime.TodayString(now), weekdayWithHoliday(day))
		if policy.EffectiveOff(day, client, record) {
			fmt.Println("Status: 休日")
		} else {
			fmt.Printf("Status: %s\n", status.Label())
		}

		if record != nil {
			fmt.Printf("Start:  %s\n", clockOrDash(record.StartTime))
			fmt.Printf("End:    %s\n", clockOrDash(record.EndTime))
			fmt.Printf("Break:  %s\n", worktime.FormatRestMinutes(record.RestMinutes))
			if hours, ok := record.WorkedHours(); ok {
				fmt.Printf("Worked: %s\n", worktime.FormatHoursToHHMM(hours))
			}
			if record.Note != "" {
				fmt.Printf("Note:   %s\n", record.Note)
			}
		}
		return nil
	},
}

var punchOffCmd = &cobra.Command{
	Use:   "off [date]",
	Short: "Mark a day as off (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOff(cmd, args, true)
	},
}

var punchOnCmd = &cobra.Command{
	Use:   "on [date]",
	Short: "Mark a day as a workday (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOff(cmd, args, false)
	},
}

var punchNoteCmd = &cobra.Command{
	Use:   "note [text]",
	Short: "Save a note for a day (default today)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}

		dateArg, _ := cmd.Flags().GetString("date")
		date, err := parseDay(dateArg, time.Now())
		if err != nil {
			return err
		}

		if _, err := appInstance.PunchService.SaveNote(ctx, client.ID, date, args[0]); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Printf("✓ Note saved for %s\n", date)
		return nil
	},
}

// setOff backs punch off|on and records off|on
func setOff(cmd *cobra.Command, args []string, off bool) error {
	ctx := context.Background()

	client, err := resolveClient(ctx, cmd)
	if err != nil {
		return err
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}
	date, err := parseDay(input, time.Now())
	if err != nil {
		return err
	}

	record, err := appInstance.RecordService.SetOff(ctx, client.ID, date, off)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", date, err)
	}

	label := "workday"
	if record.ExplicitlyOff() {
		label = "day off"
	}
	fmt.Printf("✓ %s marked as %s for %s\n", date, label, client.Name)
	return nil
}

func restFlag(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("rest") {
		return nil
	}
	rest, _ := cmd.Flags().GetInt("rest")
	return &rest
}

func weekdayWithHoliday(day time.Time) string {
	label := calendar.WeekdayLabel(day)
	if name, ok := appInstance.Holidays.NationalHolidayName(day); ok {
		label += " " + name
	}
	return label
}

func init() {
	punchCmd.AddCommand(punchInCmd)
	punchCmd.AddCommand(punchOutCmd)
	punchCmd.AddCommand(punchStatusCmd)
	punchCmd.AddCommand(punchOffCmd)
	punchCmd.AddCommand(punchOnCmd)
	punchCmd.AddCommand(punchNoteCmd)

	punchInCmd.Flags().Int("rest", 0, "Break in minutes (default: client default)")
	punchOutCmd.Flags().Int("rest", 0, "Break in minutes (default: keep current)")
	punchNoteCmd.Flags().String("date", "", "Date (YYYY-MM-DD or e.g. 'yesterday')")
}
