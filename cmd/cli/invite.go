package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/pkg/utils"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage staff invites",
}

var inviteCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Invite a staff user",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		role, _ := cmd.Flags().GetString("role")
		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if !utils.ValidateEmail(email) {
			return fmt.Errorf("%q is not a valid email address", email)
		}

		var resp dto.InviteResponse
		req := dto.CreateInviteRequest{Email: email, Role: role}
		if err := newAPIClient().post(cmd.Context(), "/api/v1/invites", req, &resp); err != nil {
			return err
		}

		// The token is only ever returned here; hand it to the invitee.
		fmt.Printf("invited %s as %s\n", resp.Email, resp.Role)
		fmt.Printf("token:   %s\n", resp.Token)
		fmt.Printf("expires: %s\n", resp.ExpiresAt.Format("2006-01-02 15:04 MST"))
		return nil
	},
}

func init() {
	inviteCreateCmd.Flags().String("email", "", "invitee email address")
	inviteCreateCmd.Flags().String("role", "viewer", "role to grant (admin|analyst|viewer)")

	inviteCmd.AddCommand(inviteCreateCmd)
	rootCmd.AddCommand(inviteCmd)
}
