package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jstittsworth/contrarian-dfs/internal/app"
	"github.com/jstittsworth/contrarian-dfs/internal/ingest"
	"github.com/spf13/cobra"
)

var importReplace bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import players from a JSON array (use - for stdin)",
	Long: `Reads a JSON array of player rows and upserts them by name.

Numeric fields may be numbers or strings such as "12.5", "12%" or "N/A";
missing values take the ingestion defaults. Rows without a name are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "remove players that are not in the file")
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var raws []ingest.RawPlayer
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return fmt.Errorf("failed to decode players: %w", err)
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Table.Import(ctx, raws, importReplace)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d players (dropped %d, removed %d), data version %s\n",
		result.Imported, result.Dropped, result.Removed, result.Version)
	return nil
}
