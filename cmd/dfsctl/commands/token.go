package commands

import (
	"fmt"
	"time"

	"github.com/jstittsworth/contrarian-dfs/internal/api/middleware"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a JWT signed with JWT_SECRET",
	Long: `Prints a bearer token for the admin endpoints.

Example:
  curl -H "Authorization: Bearer $(dfsctl token)" -X POST localhost:8080/api/v1/admin/players/reload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := middleware.IssueToken(cfg.JWTSecret, tokenSubject, tokenRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "dfsctl", "token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", middleware.RoleAdmin, "token role")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
}
