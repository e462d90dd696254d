package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/pkg/core/services"
)

// ViewHistoryCmd creates the viewHistory command
func ViewHistoryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewHistory <file>",
		Short: "Parse an exported grid and show the accumulated scheduling context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			app.Logger.Debug("viewHistory command", zap.String("path", path))

			result, err := services.ViewHistory(app.Cfg, app.Logger, path)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			ctx := result.Context

			fmt.Printf("\n🗂  Historical context from %s\n\n", ctx.Source)

			nameWidth := len("Worker")
			for _, w := range result.Workers {
				if len(w.Name) > nameWidth {
					nameWidth = len(w.Name)
				}
			}

			fmt.Printf("%-*s  %6s  %5s  %6s  %7s\n", nameWidth, "Worker", "Total", "Day", "Night", "Streak")
			fmt.Printf("%s  %s  %s  %s  %s\n",
				strings.Repeat("-", nameWidth),
				strings.Repeat("-", 6),
				strings.Repeat("-", 5),
				strings.Repeat("-", 6),
				strings.Repeat("-", 7))

			workers := result.Workers
			sort.Slice(workers, func(i, j int) bool { return workers[i].Name < workers[j].Name })

			for _, w := range workers {
				counts := ctx.Counts[w.ID]
				fmt.Printf("%-*s  %6d  %5d  %6d  %7d\n",
					nameWidth, w.Name,
					counts.Total, counts.Day, counts.Night,
					ctx.ConsecutiveDays[w.ID])
			}

			if len(ctx.LastNightShiftIDs) > 0 {
				names := make([]string, 0, len(ctx.LastNightShiftIDs))
				for _, id := range ctx.LastNightShiftIDs {
					name := id
					for _, w := range workers {
						if w.ID == id {
							name = w.Name
							break
						}
					}
					names = append(names, name)
				}
				fmt.Printf("\nLast night shift: %s\n", strings.Join(names, ", "))
				fmt.Println("These workers cannot open the next schedule on a day shift.")
			}

			if ctx.UnresolvedCells > 0 {
				fmt.Printf("\n⚠️  %d cells named workers not in the current pool and were skipped.\n", ctx.UnresolvedCells)
			}
			fmt.Println()

			return nil
		},
	}
}
