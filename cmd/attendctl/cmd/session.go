package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Short:   "Manage user sessions",
	Aliases: []string{"sessions"},
}

var sessionRevokeCmd = &cobra.Command{
	Use:   "revoke <user-id>",
	Short: "Revoke every session of a user across all devices",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := call("POST", "/admin/users/"+args[0]+"/revoke-sessions", nil, nil); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		fmt.Printf("Sessions revoked for user %s\n", args[0])
		return nil
	},
}

var sessionSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Physically delete expired session documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Deleted int64 `json:"deleted"`
		}
		if err := call("POST", "/admin/sessions/sweep", nil, &resp); err != nil {
			return fmt.Errorf("failed to sweep sessions: %w", err)
		}
		fmt.Printf("Deleted %d expired sessions\n", resp.Deleted)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionRevokeCmd)
	sessionCmd.AddCommand(sessionSweepCmd)
}
