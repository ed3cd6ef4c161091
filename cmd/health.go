package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the server is reachable",
	Long: `Probe GET /health once. Exits non-zero when the server is offline.

Examples:
  s3clone-cli health
  s3clone-cli health -s http://storage.local:3000`,
	Args: cobra.NoArgs,
	RunE: checkHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func checkHealth(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.Health(context.Background()); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Server Offline (%s)\n", client.BaseURL())
		return fmt.Errorf("server is not reachable: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Server Online (%s)\n", client.BaseURL())
	return nil
}
