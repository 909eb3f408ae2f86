package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hayasakashogo/worklog/internal/report"
	"github.com/hayasakashogo/worklog/internal/service"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the monthly attendance report",
}

var reportExportCmd = &cobra.Command{
	Use:   "export [YYYY-MM]",
	Short: "Export the report as PDF or Excel",
	Long: `Export the monthly attendance report. Every past workday must have both
a start and an end time; run 'worklog report missing' to list the gaps.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		req, err := reportRequest(ctx, cmd, args)
		if err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("format")
		if formatName == "" {
			formatName = appInstance.Config.Report.DefaultFormat
		}
		format, err := report.ParseFormat(formatName)
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("out")
		if dir == "" {
			dir = appInstance.Config.Report.OutputDir
		}

		path, err := appInstance.ReportService.Export(ctx, req, format, dir)
		if err != nil {
			return explainReportError(err)
		}

		fmt.Printf("✓ Report written: %s\n", path)
		return nil
	},
}

var reportPreviewCmd = &cobra.Command{
	Use:   "preview [YYYY-MM]",
	Short: "Print the report in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		req, err := reportRequest(ctx, cmd, args)
		if err != nil {
			return err
		}

		doc, err := appInstance.ReportService.Prepare(ctx, req)
		if err != nil {
			return explainReportError(err)
		}

		renderer := &report.TableRenderer{Styled: isTerminal(os.Stdout)}
		return renderer.Render(os.Stdout, doc)
	},
}

var reportMissingCmd = &cobra.Command{
	Use:   "missing [YYYY-MM]",
	Short: "List past workdays without a complete punch",
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

		dates, err := appInstance.ReportService.MissingDates(ctx, client.ID, year, month)
		if err != nil {
			return err
		}

		if len(dates) == 0 {
			fmt.Printf("✓ %s %d年%d月: no missing days\n", client.Name, year, int(month))
			return nil
		}
		for _, d := range dates {
			fmt.Println(d)
		}
		fmt.Printf("\n%d missing day(s)\n", len(dates))
		return nil
	},
}

func reportRequest(ctx context.Context, cmd *cobra.Command, args []string) (service.ReportRequest, error) {
	client, err := resolveClient(ctx, cmd)
	if err != nil {
		return service.ReportRequest{}, err
	}
	year, month, err := parseMonth(args, time.Now())
	if err != nil {
		return service.ReportRequest{}, err
	}
	remarks, _ := cmd.Flags().GetString("remarks")

	return service.ReportRequest{
		ClientID: client.ID,
		Year:     year,
		Month:    month,
		Remarks:  remarks,
	}, nil
}

func explainReportError(err error) error {
	var missing *service.MissingDatesError
	if errors.As(err, &missing) {
		fmt.Fprintln(os.Stderr, "Report not generated. Fill in these days first:")
		for _, d := range missing.Dates {
			fmt.Fprintf(os.Stderr, "  %s\n", d)
		}
		return err
	}
	if errors.Is(err, report.ErrFontRequired) {
		return fmt.Errorf("%w\nTry --format xlsx, or set WORKLOG_FONT_PATH to a NotoSansJP .ttf", err)
	}
	return err
}

func init() {
	reportCmd.AddCommand(reportExportCmd)
	reportCmd.AddCommand(reportPreviewCmd)
	reportCmd.AddCommand(reportMissingCmd)

	reportExportCmd.Flags().StringP("format", "f", "", "Output format: pdf or xlsx (default from config)")
	reportExportCmd.Flags().StringP("out", "o", "", "Output directory (default from config)")
	reportExportCmd.Flags().String("remarks", "", "Remarks printed on the report")
	reportPreviewCmd.Flags().String("remarks", "", "Remarks printed on the report")
}
