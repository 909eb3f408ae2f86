package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hayasakashogo/worklog/internal/events"
)

// minimum spacing between re-renders in records watch
const watchInterval = 500 * time.Millisecond

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "View and edit the monthly attendance grid",
}

var recordsShowCmd = &cobra.Command{
	Use:   "show [YYYY-MM]",
	Short: "Show a month with totals, estimate and missing days",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}
		year, month, err := parseMonth(args, time.Now())
		if err != nil {
			return err
		}

		sheet, err := appInstance.RecordService.Month(ctx, client.ID, year, month)
		if err != nil {
			return err
		}
		return renderSheet(os.Stdout, sheet, isTerminal(os.Stdout))
	},
}

var recordsEditCmd = &cobra.Command{
	Use:   "edit [date] [start|end|rest|note] [value]",
	Short: "Edit one field of a day",
	Long: `Edit one field of a day. Start and end accept HH:MM and are floored to
five minutes; an empty value clears them. Rest is in minutes.

Examples:
  worklog records edit 2026-01-05 start 09:07
  worklog records edit yesterday end 18:30
  worklog records edit "last friday" rest 45
  worklog records edit 2026-01-05 end ""`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}
		date, err := parseDay(args[0], time.Now())
		if err != nil {
			return err
		}

		record, err := appInstance.RecordService.Edit(ctx, client.ID, date, args[1], args[2])
		if err != nil {
			return fmt.Errorf("failed to edit %s: %w", date, err)
		}

		fmt.Printf("✓ %s updated: %s - %s, break %d min\n",
			date, clockOrDash(record.StartTime), clockOrDash(record.EndTime), record.RestMinutes)
		return nil
	},
}

var recordsOffCmd = &cobra.Command{
	Use:   "off [date]",
	Short: "Mark a day as off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOff(cmd, args, true)
	},
}

var recordsOnCmd = &cobra.Command{
	Use:   "on [date]",
	Short: "Mark a day as a workday",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setOff(cmd, args, false)
	},
}

var recordsWatchCmd = &cobra.Command{
	Use:   "watch [YYYY-MM]",
	Short: "Show a month and redraw it whenever its records change",
	Long: `Show a month and redraw it whenever its records change. Changes made by
other processes are only seen when sync.redis_addr is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		client, err := resolveClient(ctx, cmd)
		if err != nil {
			return err
		}
		year, month, err := parseMonth(args, time.Now())
		if err != nil {
			return err
		}

		changes, cancel, err := appInstance.Broker.Subscribe(ctx, client.ID)
		if err != nil {
			return fmt.Errorf("failed to subscribe to changes: %w", err)
		}
		defer cancel()

		styled := isTerminal(os.Stdout)
		render := func() error {
			sheet, err := appInstance.RecordService.Month(ctx, client.ID, year, month)
			if err != nil {
				return err
			}
			if styled {
				fmt.Print("\033[H\033[2J")
			}
			return renderSheet(os.Stdout, sheet, styled)
		}
		if err := render(); err != nil {
			return err
		}

		limiter := rate.NewLimiter(rate.Every(watchInterval), 1)
		for {
			select {
			case <-ctx.Done():
				return nil
			case change, ok := <-changes:
				if !ok {
					return nil
				}
				if err := limiter.Wait(ctx); err != nil {
					return nil
				}
				drained := drainChanges(changes)
				appInstance.Logger.Debug("redrawing month",
					zap.String("kind", string(change.Kind)),
					zap.Int("coalesced", drained),
				)
				if err := render(); err != nil {
					return err
				}
			}
		}
	},
}

// drainChanges discards notifications already queued; one redraw covers them
func drainChanges(changes <-chan events.Change) int {
	n := 0
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return n
			}
			n++
		default:
			return n
		}
	}
}

func init() {
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsEditCmd)
	recordsCmd.AddCommand(recordsOffCmd)
	recordsCmd.AddCommand(recordsOnCmd)
	recordsCmd.AddCommand(recordsWatchCmd)
}
