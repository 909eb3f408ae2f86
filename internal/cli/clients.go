package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and delete clients and their contract settings.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientService.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		fmt.Printf("%-36s  %-24s %-11s %-13s %-8s\n", "ID", "Name", "Hours", "Default", "Off")
		fmt.Println("------------------------------------------------------------------------------------------------")

		for _, c := range clients {
			fmt.Printf("%-36s  %-24s %-11s %-13s %-8s\n",
				c.ID,
				truncate(c.Name, 24),
				fmt.Sprintf("%g-%g", c.MinHours, c.MaxHours),
				c.DefaultStartTime.String()+"-"+c.DefaultEndTime.String(),
				domain.FormatWeekdays(c.Holidays),
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show [id|name]",
	Short: "Show a client's contract settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := clientFromArgs(ctx, cmd, args)
		if err != nil {
			return err
		}

		national := "no"
		if client.IncludeNationalHolidays {
			national = "yes"
		}
		fmt.Printf("Name:               %s\n", client.Name)
		fmt.Printf("ID:                 %s\n", client.ID)
		fmt.Printf("Contract hours:     %gh - %gh\n", client.MinHours, client.MaxHours)
		fmt.Printf("Default day:        %s - %s (break %s)\n",
			client.DefaultStartTime, client.DefaultEndTime, worktime.FormatRestMinutes(client.DefaultRestMinutes))
		fmt.Printf("Standard hours/day: %s\n", worktime.FormatHoursToHHMM(client.DefaultWorkHours()))
		fmt.Printf("Weekly days off:    %s\n", domain.FormatWeekdays(client.Holidays))
		fmt.Printf("National holidays:  %s\n", national)
		fmt.Printf("Report filename:    %s\n", client.PDFFilenameTemplate)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client := domain.NewClient(args[0])
		if err := applyClientFlags(cmd, client); err != nil {
			return err
		}

		if err := client.Validate(); err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}

		if err := appInstance.ClientService.Create(ctx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %s)\n", client.Name, client.ID)
		fmt.Printf("  Contract: %gh - %gh, %s - %s\n",
			client.MinHours, client.MaxHours, client.DefaultStartTime, client.DefaultEndTime)

		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id|name]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.ClientService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			client.Name = name
		}
		if err := applyClientFlags(cmd, client); err != nil {
			return err
		}

		if err := client.Validate(); err != nil {
			return fmt.Errorf("invalid client: %w", err)
		}

		if err := appInstance.ClientService.Update(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete [id|name]",
	Short: "Delete a client and all of its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.ClientService.Resolve(ctx, args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("yes")
		if !force && !confirmPrompt(fmt.Sprintf("Delete %s and ALL of its attendance records?", client.Name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.ClientService.Delete(ctx, client.ID); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

func clientFromArgs(ctx context.Context, cmd *cobra.Command, args []string) (*domain.Client, error) {
	if len(args) == 1 {
		return appInstance.ClientService.Resolve(ctx, args[0])
	}
	return resolveClient(ctx, cmd)
}

// applyClientFlags copies every changed contract flag onto the client
func applyClientFlags(cmd *cobra.Command, client *domain.Client) error {
	flags := cmd.Flags()

	if flags.Changed("min") {
		client.MinHours, _ = flags.GetFloat64("min")
	}
	if flags.Changed("max") {
		client.MaxHours, _ = flags.GetFloat64("max")
	}
	if flags.Changed("start") {
		s, _ := flags.GetString("start")
		c, err := worktime.ParseClock(s)
		if err != nil {
			return err
		}
		client.DefaultStartTime = c
	}
	if flags.Changed("end") {
		s, _ := flags.GetString("end")
		c, err := worktime.ParseClock(s)
		if err != nil {
			return err
		}
		client.DefaultEndTime = c
	}
	if flags.Changed("rest") {
		client.DefaultRestMinutes, _ = flags.GetInt("rest")
	}
	if flags.Changed("off") {
		s, _ := flags.GetString("off")
		days, err := domain.ParseWeekdays(s)
		if err != nil {
			return err
		}
		client.Holidays = days
	}
	if flags.Changed("national-holidays") {
		client.IncludeNationalHolidays, _ = flags.GetBool("national-holidays")
	}
	if flags.Changed("filename") {
		client.PDFFilenameTemplate, _ = flags.GetString("filename")
	}
	return nil
}

func addContractFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min", domain.DefaultMinHours, "Minimum contracted hours per month")
	cmd.Flags().Float64("max", domain.DefaultMaxHours, "Maximum contracted hours per month")
	cmd.Flags().String("start", domain.DefaultStartTime.String(), "Default start time (HH:MM)")
	cmd.Flags().String("end", domain.DefaultEndTime.String(), "Default end time (HH:MM)")
	cmd.Flags().Int("rest", domain.DefaultRestMinutes, "Default break in minutes")
	cmd.Flags().String("off", "sun,sat", "Weekly days off, e.g. sat,sun or 土,日")
	cmd.Flags().Bool("national-holidays", true, "Treat Japanese national holidays as days off")
	cmd.Flags().String("filename", domain.DefaultPDFFilenameTemplate, "Report filename template ({YYYY}, {MM}, {CLIENT})")
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	addContractFlags(clientsAddCmd)
	addContractFlags(clientsEditCmd)
	clientsEditCmd.Flags().String("name", "", "New name")

	clientsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
}
