package commands

import (
	"fmt"

	"github.com/jstittsworth/contrarian-dfs/internal/app"
	"github.com/jstittsworth/contrarian-dfs/internal/ingest"
	"github.com/spf13/cobra"
)

var seedReplace bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the 8-player sample table",
	Long: `Upserts the demo table (two players per core position) by name.

With --replace, every other row is removed first so the table matches the
sample exactly.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "remove players that are not in the sample")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Table.Import(ctx, ingest.SamplePlayers(), seedReplace)
	if err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d players (removed %d), data version %s\n",
		result.Imported, result.Removed, result.Version)
	return nil
}
