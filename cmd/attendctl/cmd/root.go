package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverEndpoint string
	authToken      string
)

var rootCmd = &cobra.Command{
	Use:   "attendctl",
	Short: "attendctl is a CLI for administering the attend server",
	Long: `A command-line interface for administrative operations against the
attend server: provisioning accounts, revoking user sessions, sweeping
expired sessions, and managing the punch-in IP allow-list.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverEndpoint, "server",
		envOr("ATTEND_SERVER", "http://localhost:8080"), "attend server endpoint")
	rootCmd.PersistentFlags().StringVar(&authToken, "token",
		os.Getenv("ATTEND_TOKEN"), "admin access token")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(allowlistCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
