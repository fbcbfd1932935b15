package commands

import (
	"errors"
	"fmt"

	"github.com/jstittsworth/contrarian-dfs/internal/app"
	"github.com/jstittsworth/contrarian-dfs/internal/models"
	"github.com/jstittsworth/contrarian-dfs/internal/optimizer"
	"github.com/spf13/cobra"
)

var (
	buildStrategy string
	buildCap      int
	buildInclude  []string
	buildExclude  []string
	buildJSON     bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a lineup from the current player table",
	Long: `Runs the greedy lineup builder over the classified player table.

Strategies: tournament (gpp), cash, ultra_contrarian. A roster that cannot be
completed prints the reason and exits non-zero.

Example:
  dfsctl build --strategy "Cash Game" --cap 48000 --exclude "Cooper Kupp"`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVarP(&buildStrategy, "strategy", "s", string(models.StrategyTournament), "lineup strategy")
	buildCmd.Flags().IntVar(&buildCap, "cap", 0, "salary cap (default SALARY_CAP)")
	buildCmd.Flags().StringSliceVar(&buildInclude, "include", nil, "players that must be in the lineup")
	buildCmd.Flags().StringSliceVar(&buildExclude, "exclude", nil, "players to leave out")
	buildCmd.Flags().BoolVar(&buildJSON, "json", false, "print the lineup as JSON")
}

func runBuild(cmd *cobra.Command, args []string) error {
	strategy, err := models.ParseStrategy(buildStrategy)
	if err != nil {
		return err
	}

	salaryCap := buildCap
	if salaryCap == 0 {
		salaryCap = cfg.SalaryCap
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.Table.Snapshot(ctx)
	if err != nil {
		return err
	}

	lineup, err := optimizer.BuildLineup(snap.Players, optimizer.BuildRequest{
		Strategy:    strategy,
		SalaryCap:   salaryCap,
		MustInclude: buildInclude,
		Exclude:     buildExclude,
	})

	var nvl *optimizer.NoValidLineupError
	if errors.As(err, &nvl) {
		fmt.Fprintf(cmd.OutOrStdout(), "No valid lineup (%s): %s\n", nvl.Kind, nvl.Reason)
		return err
	}
	if err != nil {
		return err
	}

	if buildJSON {
		return printJSON(cmd.OutOrStdout(), lineup)
	}
	return printLineup(cmd.OutOrStdout(), lineup)
}
