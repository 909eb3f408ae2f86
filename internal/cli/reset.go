package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete ALL data: clients and attendance records",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("yes")
		if !force && !confirmPrompt("This will delete ALL clients and attendance records. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.DB.Reset(); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}

		appInstance.Logger.Warn("database reset", zap.String("path", appInstance.DB.Path()))
		fmt.Printf("✓ All data in %s has been deleted.\n", appInstance.DB.Path())
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}
