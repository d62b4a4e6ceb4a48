package cmd

import (
	"fmt"

	"bagbuilder-go/internal/auth"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token",
	Long: `Issue a bearer token for the API. Without --user a new anonymous
user is created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		var s auth.Session
		if userID == "" {
			s, err = a.JWT.IssueAnonymous()
		} else {
			s, err = a.JWT.IssueFor(userID)
		}
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user:    %s\n", s.UserID)
		fmt.Fprintf(out, "expires: %s\n", s.ExpiresAt.Format("2006-01-02 15:04 MST"))
		fmt.Fprintf(out, "token:   %s\n", s.Token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	addUserFlag(tokenCmd)
}
