package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListWorkersCmd creates the listWorkers command
func ListWorkersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listWorkers",
		Short: "List the configured worker pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listWorkers command")

			workers := app.Cfg.ToWorkers()

			fmt.Printf("\nFound %d workers in team %q:\n\n", len(workers), app.Cfg.Team)
			for _, w := range workers {
				details := []string{string(w.Preference)}
				if len(w.DaysOff) > 0 {
					offs := make([]string, len(w.DaysOff))
					for i, d := range w.DaysOff {
						offs[i] = d.String()
					}
					details = append(details, "off "+strings.Join(offs, "/"))
				}
				if w.TargetShifts != nil {
					details = append(details, fmt.Sprintf("target %d", *w.TargetShifts))
				}
				fmt.Printf("- %s (%s) - %s\n", w.Name, w.ID, strings.Join(details, ", "))
			}
			fmt.Println()

			return nil
		},
	}
}
