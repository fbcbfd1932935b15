package commands

import (
	"github.com/jstittsworth/contrarian-dfs/pkg/config"
	"github.com/jstittsworth/contrarian-dfs/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	databaseURL string
	verbose     bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dfsctl",
	Short: "Operate the contrarian DFS player table and lineup builder",
	Long: `dfsctl manages the player table behind the contrarian DFS service.

Configuration comes from .env and the environment, the same as the server.

Examples:
  dfsctl migrate up
  dfsctl seed
  dfsctl build --strategy tournament --cap 50000
  dfsctl build --strategy cash --include "Josh Allen" --exclude "Cooper Kupp"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if databaseURL != "" {
			loaded.DatabaseURL = databaseURL
		}

		level := loaded.LogLevel
		if verbose {
			level = "debug"
		} else if level == "info" {
			level = "warn"
		}
		logger.InitLogger(level, loaded.LogFormat).SetOutput(cmd.ErrOrStderr())

		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "override DATABASE_URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
