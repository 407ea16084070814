// Package cli implements the riskboard-admin command tree. Every command is a
// thin wrapper over the HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL   string
	apiToken string
)

var rootCmd = &cobra.Command{
	Use:   "riskboard-admin",
	Short: "Admin CLI for the riskboard service",
	Long: `riskboard-admin performs administrative tasks against a running
riskboard instance: managing tenants, approving and sending reports, and
inviting staff users.`,
}

// Execute runs the CLI, printing any error and exiting non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url",
		envOr("RISKBOARD_API_URL", "http://localhost:8080"), "base URL of the riskboard API")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token",
		os.Getenv("RISKBOARD_TOKEN"), "session token (defaults to RISKBOARD_TOKEN)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
