package cmd

import (
	"errors"

	"bagbuilder-go/internal/app"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bagbuilder",
	Short: "Crypto trading journal and portfolio tracker",
	Long: `Bagbuilder keeps a trading journal, tracks stablecoin balances and
contributions, and checks every trade against your personal rules.

Run "bagbuilder serve" for the HTTP API, or use the report commands to
look at a user's journal from the terminal.`,
	SilenceUsage: true,
}

var (
	configDir string
	userID    string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "./configs", "directory containing config.yml")
}

// addUserFlag registers the --user flag on report commands.
func addUserFlag(c *cobra.Command) {
	c.Flags().StringVarP(&userID, "user", "u", "", "journal owner (user id)")
}

func loadApp() (*app.App, error) {
	return app.New(configDir)
}

func requireUser() error {
	if userID == "" {
		return errors.New("--user is required")
	}
	return nil
}
