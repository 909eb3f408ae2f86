package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

var errNoClient = errors.New("no client selected: pass --client or set defaults.client in the config")

// resolveClient picks the client from --client, then the configured default,
// then the only registered client
func resolveClient(ctx context.Context, cmd *cobra.Command) (*domain.Client, error) {
	ref, _ := cmd.Flags().GetString("client")
	if ref == "" {
		ref = appInstance.Config.Defaults.Client
	}
	if ref != "" {
		return appInstance.ClientService.Resolve(ctx, ref)
	}

	clients, err := appInstance.ClientService.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 1 {
		return clients[0], nil
	}
	return nil, errNoClient
}

// parseDay accepts YYYY-MM-DD or a natural language expression such as
// "yesterday" or "last friday"
func parseDay(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		return worktime.TodayString(now), nil
	}
	if t, err := worktime.ParseDate(input); err == nil {
		return worktime.DateKey(t), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return "", fmt.Errorf("could not understand date %q", input)
	}
	return worktime.DateKey(result.Time), nil
}

// parseMonth accepts YYYY-MM, a natural language date inside the month, or
// nothing for the current month
func parseMonth(args []string, now time.Time) (int, time.Month, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		local := now.Local()
		return local.Year(), local.Month(), nil
	}

	input := strings.TrimSpace(args[0])
	if t, err := time.Parse("2006-01", input); err == nil {
		return t.Year(), t.Month(), nil
	}

	day, err := parseDay(input, now)
	if err != nil {
		return 0, 0, fmt.Errorf("could not understand month %q: expected YYYY-MM", input)
	}
	t, _ := worktime.ParseDate(day)
	return t.Year(), t.Month(), nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

func clockOrDash(c *worktime.Clock) string {
	if c == nil {
		return "--:--"
	}
	return c.String()
}
