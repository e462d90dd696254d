package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/pkg/core/model"
	"github.com/mhollis/wardshift/pkg/core/services"
)

// GenerateRosterCmd creates the generateRoster command
func GenerateRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRoster <year> <month>",
		Short: "Generate a day/night roster for a calendar month",
		Long:  "Run the scheduling algorithm to assign workers to day and night shifts across the month, honoring rest rules, availability, and fairness targets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}
			monthNum, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("month must be a number (1-12): %w", err)
			}

			historyPath, _ := cmd.Flags().GetString("history")
			exportPath, _ := cmd.Flags().GetString("out")
			name, _ := cmd.Flags().GetString("name")
			seed, _ := cmd.Flags().GetInt64("seed")
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			app.Logger.Debug("generateRoster command",
				zap.Int("year", year),
				zap.Int("month", monthNum),
				zap.String("history", historyPath),
				zap.Int64("seed", seed))

			result, err := services.GenerateRoster(app.Cfg, app.Logger, services.GenerateRosterParams{
				Year:        year,
				Month:       time.Month(monthNum),
				Name:        name,
				HistoryPath: historyPath,
				ExportPath:  exportPath,
				Seed:        seed,
			})
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			printRoster(result, app.Cfg.ToWorkers(), seed)

			return nil
		},
	}

	cmd.Flags().String("history", "", "Exported grid to seed month-boundary state from")
	cmd.Flags().String("out", "", "Write the generated schedule to this CSV file")
	cmd.Flags().String("name", "", "Label for the generated version")
	cmd.Flags().Int64("seed", 0, "Seed for ranking tie-breaks (default: current time)")

	return cmd
}

func printRoster(result *services.GenerateRosterResult, workers []model.Worker, seed int64) {
	version := result.Version

	namesByID := make(map[string]string, len(workers))
	for _, w := range workers {
		namesByID[w.ID] = w.Name
	}

	fmt.Printf("\n📅 %s\n\n", version.Name)
	fmt.Printf("Version ID: %s\n", version.ID)
	fmt.Printf("Seed:       %d\n", seed)
	if result.History != nil {
		fmt.Printf("History:    %s\n", result.History.Source)
	}
	if result.Complete {
		fmt.Printf("Status:     ✅ all slots filled\n")
	} else {
		fmt.Printf("Status:     ⚠️  %d under-filled slots\n", len(result.Shortfalls))
	}
	fmt.Println()

	// Calculate column widths from the rendered shift lists
	dayColWidth := len("Day shift")
	nightColWidth := len("Night shift")
	for _, day := range version.Days {
		if w := len(joinNames(day.DayShift, namesByID)); w > dayColWidth {
			dayColWidth = w
		}
		if w := len(joinNames(day.NightShift, namesByID)); w > nightColWidth {
			nightColWidth = w
		}
	}

	fmt.Printf("%-12s %-4s %-*s  %-*s\n", "Date", "", dayColWidth, "Day shift", nightColWidth, "Night shift")
	fmt.Printf("%s %s %s  %s\n",
		strings.Repeat("-", 12),
		strings.Repeat("-", 4),
		strings.Repeat("-", dayColWidth),
		strings.Repeat("-", nightColWidth))

	for _, day := range version.Days {
		marker := ""
		if day.OutsideMonth {
			marker = "·"
		}
		fmt.Printf("%-12s %-4s %-*s  %-*s\n",
			day.Date,
			marker,
			dayColWidth, joinNames(day.DayShift, namesByID),
			nightColWidth, joinNames(day.NightShift, namesByID))
	}
	fmt.Println("\n  · = padding date outside the target month")

	printStats(version, workers)

	if len(result.Shortfalls) > 0 {
		fmt.Printf("\n⚠️  Under-filled slots (%d):\n", len(result.Shortfalls))
		for _, s := range result.Shortfalls {
			fmt.Printf("  • %s %s shift: %d/%d\n", s.Date, s.Shift, s.Assigned, s.Required)
		}
	}

	if len(result.Violations) > 0 {
		fmt.Printf("\n⚠️  Rule violations (%d, from manual assignments):\n", len(result.Violations))
		for _, v := range result.Violations {
			fmt.Printf("  • %s [%s] %s\n", v.Date, v.Rule, v.Description)
		}
	}

	if result.ExportPath != "" {
		fmt.Printf("\n✓ Schedule exported to %s\n", result.ExportPath)
	}
	fmt.Println()
}

func printStats(version *model.ScheduleVersion, workers []model.Worker) {
	fmt.Printf("\n📊 Worker statistics (in-month shifts):\n\n")

	nameWidth := len("Worker")
	for _, w := range workers {
		if len(w.Name) > nameWidth {
			nameWidth = len(w.Name)
		}
	}

	fmt.Printf("%-*s  %6s  %5s  %6s  %7s  %6s\n", nameWidth, "Worker", "Total", "Day", "Night", "Streak", "Target")
	fmt.Printf("%s  %s  %s  %s  %s  %s\n",
		strings.Repeat("-", nameWidth),
		strings.Repeat("-", 6),
		strings.Repeat("-", 5),
		strings.Repeat("-", 6),
		strings.Repeat("-", 7),
		strings.Repeat("-", 6))

	sorted := append([]model.Worker(nil), workers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, w := range sorted {
		stats := version.Stats[w.ID]
		target := "—"
		if w.TargetShifts != nil {
			target = strconv.Itoa(*w.TargetShifts)
		}
		fmt.Printf("%-*s  %6d  %5d  %6d  %7d  %6s\n",
			nameWidth, w.Name,
			stats.TotalShifts, stats.DayShifts, stats.NightShifts, stats.LongestStreak,
			target)
	}
}

func joinNames(ids []string, namesByID map[string]string) string {
	if len(ids) == 0 {
		return "—"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := namesByID[id]; ok {
			names[i] = name
		} else {
			names[i] = id
		}
	}
	return strings.Join(names, ", ")
}
