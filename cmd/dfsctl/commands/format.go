package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jstittsworth/contrarian-dfs/internal/models"
)

func printLineup(w io.Writer, lineup *models.Lineup) error {
	fmt.Fprintf(w, "%s lineup, cap $%d\n\n", lineup.Strategy, lineup.SalaryCap)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tPLAYER\tPOS\tSALARY\tPROJ\tOWN%\tPLAY\tSCORE")
	for _, slot := range lineup.Slots {
		p := slot.Player
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%d\t%.1f\t%.1f\t%s\t%.1f\n",
			slot.Slot, p.Name, p.Position, p.Salary, p.ProjectedPoints, p.OwnershipPct, p.PlayType, slot.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal salary $%d (remaining $%d), projected %.1f pts\n",
		lineup.TotalSalary, lineup.SalaryRemaining, lineup.ProjectedPoints)
	return err
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
