package cli

import (
	"fmt"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mspsec/riskboard/internal/application/dto"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage client tenants",
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		var resp dto.ListTenantsResponse
		path := fmt.Sprintf("/api/v1/tenants?page=%d&page_size=%d", page, pageSize)
		if err := newAPIClient().get(cmd.Context(), path, &resp); err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tSTATUS\tCREATED")
		for _, t := range resp.Tenants {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.Name, t.Industry, t.Status, t.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

var tenantCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		industry, _ := cmd.Flags().GetString("industry")
		if name == "" {
			return fmt.Errorf("--name is required")
		}

		var resp dto.TenantResponse
		req := dto.CreateTenantRequest{Name: name, Industry: industry}
		if err := newAPIClient().post(cmd.Context(), "/api/v1/tenants", req, &resp); err != nil {
			return err
		}

		fmt.Printf("created tenant %s (%s)\n", resp.Name, resp.ID)
		return nil
	},
}

var tenantSuspendCmd = &cobra.Command{
	Use:   "suspend <tenant-id>",
	Short: "Suspend a tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := "suspended"
		req := dto.UpdateTenantRequest{Status: &status}

		var resp dto.TenantResponse
		path := "/api/v1/tenants/" + url.PathEscape(args[0])
		if err := newAPIClient().put(cmd.Context(), path, req, &resp); err != nil {
			return err
		}

		fmt.Printf("tenant %s is now %s\n", resp.ID, resp.Status)
		return nil
	},
}

func init() {
	tenantListCmd.Flags().Int("page", 1, "page number")
	tenantListCmd.Flags().Int("page-size", 50, "results per page")
	tenantCreateCmd.Flags().String("name", "", "tenant name")
	tenantCreateCmd.Flags().String("industry", "", "tenant industry")

	tenantCmd.AddCommand(tenantListCmd, tenantCreateCmd, tenantSuspendCmd)
	rootCmd.AddCommand(tenantCmd)
}
