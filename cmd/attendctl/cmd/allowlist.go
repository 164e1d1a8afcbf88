package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var allowlistCmd = &cobra.Command{
	Use:     "allowlist",
	Short:   "Manage the punch-in IP allow-list",
	Aliases: []string{"ips"},
}

var allowlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List allow-list entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		var entries []struct {
			Address string `json:"Address"`
			Label   string `json:"Label"`
		}
		if err := call("GET", "/admin/allowed-ips", nil, &entries); err != nil {
			return fmt.Errorf("failed to list allow-list: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("Allow-list is empty.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-40s %s\n", e.Address, e.Label)
		}
		return nil
	},
}

var allowlistAddCmd = &cobra.Command{
	Use:   "add <address>",
	Short: "Add an address to the allow-list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, _ := cmd.Flags().GetString("label")
		body := map[string]string{"address": args[0], "label": label}
		if err := call("POST", "/admin/allowed-ips", body, nil); err != nil {
			return fmt.Errorf("failed to add address: %w", err)
		}
		fmt.Printf("Added %s\n", args[0])
		return nil
	},
}

var allowlistRemoveCmd = &cobra.Command{
	Use:   "remove <address>",
	Short: "Remove an address from the allow-list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := call("DELETE", "/admin/allowed-ips/"+args[0], nil, nil); err != nil {
			return fmt.Errorf("failed to remove address: %w", err)
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	allowlistAddCmd.Flags().String("label", "", "human-readable label for the address")
	allowlistCmd.AddCommand(allowlistListCmd)
	allowlistCmd.AddCommand(allowlistAddCmd)
	allowlistCmd.AddCommand(allowlistRemoveCmd)
}
