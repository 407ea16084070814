package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mspsec/riskboard/internal/application/dto"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Manage quarterly reports",
}

var reportApproveCmd = &cobra.Command{
	Use:   "approve <report-id>",
	Short: "Approve a report in review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp dto.ReportResponse
		path := "/api/v1/reports/" + url.PathEscape(args[0]) + "/approve"
		if err := newAPIClient().post(cmd.Context(), path, nil, &resp); err != nil {
			return err
		}
		fmt.Printf("report %s (%s) is now %s\n", resp.ID, resp.Period, resp.Status)
		return nil
	},
}

var reportSendCmd = &cobra.Command{
	Use:   "send <report-id>",
	Short: "Send an approved report to its recipients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipients, _ := cmd.Flags().GetStringSlice("to")
		if len(recipients) == 0 {
			return fmt.Errorf("--to is required")
		}

		var resp dto.ReportResponse
		req := dto.SendReportRequest{Recipients: recipients}
		path := "/api/v1/reports/" + url.PathEscape(args[0]) + "/send"
		if err := newAPIClient().post(cmd.Context(), path, req, &resp); err != nil {
			return err
		}
		fmt.Printf("report %s sent to %s\n", resp.ID, strings.Join(resp.Recipients, ", "))
		return nil
	},
}

func init() {
	reportSendCmd.Flags().StringSlice("to", nil, "recipient email addresses")

	reportCmd.AddCommand(reportApproveCmd, reportSendCmd)
	rootCmd.AddCommand(reportCmd)
}
