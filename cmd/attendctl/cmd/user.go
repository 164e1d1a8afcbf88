package cmd

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var userCmd = &cobra.Command{
	Use:     "user",
	Short:   "Manage employee accounts",
	Aliases: []string{"users"},
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an employee or admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		if email == "" {
			return errors.New("email is required via --email flag")
		}
		if password == "" {
			fmt.Print("Enter password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Print("Confirm password: ")
			byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("failed to read password confirmation: %w", err)
			}
			if password != string(byteConfirm) {
				return errors.New("passwords do not match")
			}
		}

		var resp struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		body := map[string]string{
			"email": email, "password": password, "name": name, "role": role,
		}
		if err := call("POST", "/admin/users", body, &resp); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Printf("Created %s account %s (%s)\n", resp.Role, resp.Email, resp.ID)
		return nil
	},
}

var userGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show one account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			ID     string `json:"id"`
			Email  string `json:"email"`
			Name   string `json:"name"`
			Role   string `json:"role"`
			Active bool   `json:"active"`
		}
		if err := call("GET", "/admin/users/"+args[0], nil, &resp); err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		fmt.Printf("ID:     %s\nEmail:  %s\nName:   %s\nRole:   %s\nActive: %t\n",
			resp.ID, resp.Email, resp.Name, resp.Role, resp.Active)
		return nil
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userGetCmd)

	userCreateCmd.Flags().StringP("email", "e", "", "Account email address")
	userCreateCmd.Flags().StringP("password", "p", "", "Password (prompts when omitted)")
	userCreateCmd.Flags().String("name", "", "Display name")
	userCreateCmd.Flags().String("role", "employee", "Account role: employee or admin")
}
