package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hayasakashogo/worklog/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Attendance tracking and monthly reports for freelancers",
	Long: `Worklog records daily punch in / punch out times per client, tracks the
month against the contracted hour range, and exports the monthly
attendance report (稼働報告書) as PDF or Excel.

By default, running worklog without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return requireApp(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd, args)
	},
}

var errNoApp = errors.New("worklog is not initialized")

// requireApp fails commands that need the database when the app was not set up.
// Help output never needs it.
func requireApp(cmd *cobra.Command) error {
	if appInstance != nil || cmd.Name() == "help" {
		return nil
	}
	return fmt.Errorf("%w: cannot run %q", errNoApp, cmd.CommandPath())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.PersistentFlags().StringP("client", "c", "", "Client ID or name (defaults.client in config when omitted)")

	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(punchCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
