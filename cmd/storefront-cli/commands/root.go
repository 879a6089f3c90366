// Package commands implements the storefront CLI commands.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/asb-digital/storefront-engine/pkg/storefront"
)

var (
	apiURL    string
	sessionID string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront CLI - browse the catalogue, filter variants and manage the inquiry cart",
	Long: `The storefront CLI talks to the storefront API: relevance search over
catalogue records, chassis/variant option discovery and filtering, and
the session-scoped price-inquiry cart.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8090", "storefront API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "cli", "cart session id")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func apiClient() *storefront.Client {
	return storefront.NewClient(storefront.ClientConfig{
		BaseURL:   apiURL,
		SessionID: sessionID,
		Timeout:   15 * time.Second,
	})
}
