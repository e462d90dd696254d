package services

import (
	"fmt"
	"os"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/internal/config"
	"github.com/mhollis/wardshift/pkg/core/calendar"
	"github.com/mhollis/wardshift/pkg/core/history"
	"github.com/mhollis/wardshift/pkg/core/model"
	"github.com/mhollis/wardshift/pkg/core/roster"
	"github.com/mhollis/wardshift/pkg/export"
)

// GenerateRosterParams are the per-run inputs of the generate command
type GenerateRosterParams struct {
	Year  int
	Month time.Month

	// Name labels the resulting version; empty means "<Month> <Year>"
	Name string

	// HistoryPath is an optional exported grid to seed month-boundary
	// state from
	HistoryPath string

	// ExportPath optionally writes the schedule as a CSV grid
	ExportPath string

	// Seed drives ranking tie-breaks; rerunning with the same seed
	// reproduces the schedule exactly
	Seed int64
}

// GenerateRosterResult contains the generation results
type GenerateRosterResult struct {
	Version    *model.ScheduleVersion
	Shortfalls []roster.Shortfall
	Complete   bool

	// Violations reports hard-constraint breaches in the final schedule
	// (introduced only by manual assignments, which bypass the rules)
	Violations []roster.ScheduleViolation

	// History is the parsed historical context, nil on a cold start
	History *model.HistoricalContext

	// ExportPath is set when the schedule was written to disk
	ExportPath string
}

// GenerateRoster runs the full scheduling pipeline: load the pool and
// requirements from config, seed historical context from an exported grid
// when provided, generate the month, audit it, and optionally export it.
func GenerateRoster(cfg *config.Config, logger *zap.Logger, params GenerateRosterParams) (*GenerateRosterResult, error) {
	if params.Month < time.January || params.Month > time.December {
		return nil, fmt.Errorf("month must be 1-12, got %d", int(params.Month))
	}
	if params.Year < 1 {
		return nil, fmt.Errorf("year must be positive, got %d", params.Year)
	}

	logger.Debug("Starting generateRoster",
		zap.Int("year", params.Year),
		zap.String("month", params.Month.String()),
		zap.Int64("seed", params.Seed))

	workers := cfg.ToWorkers()
	logger.Debug("Loaded worker pool", zap.Int("count", len(workers)))

	// Seed month-boundary state from a prior export when provided
	var history *model.HistoricalContext
	if params.HistoryPath != "" {
		var err error
		history, err = loadHistory(params.HistoryPath, workers, logger)
		if err != nil {
			return nil, err
		}
	}

	overrides, err := convertRequirementOverrides(cfg.RequirementOverrides, params.Year, params.Month, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to convert requirement overrides: %w", err)
	}

	name := params.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", params.Month, params.Year)
	}

	options := roster.Options{
		PrioritizeEitherForDay: cfg.Options.PrioritizeEitherForDay,
		MaxConsecutiveDays:     cfg.Options.MaxConsecutiveDays,
	}

	logger.Info("Running schedule generation",
		zap.String("name", name),
		zap.Int("workers", len(workers)),
		zap.Int("manual_assignments", len(cfg.ManualAssignments)))

	outcome := roster.Generate(roster.GenerateConfig{
		Year:                 params.Year,
		Month:                params.Month,
		Name:                 name,
		Workers:              workers,
		Requirements:         cfg.ToRequirements(),
		RequirementOverrides: overrides,
		History:              history,
		Manual:               cfg.ToManualAssignments(),
		Options:              options,
		Seed:                 params.Seed,
	})

	logger.Info("Generation completed",
		zap.String("version_id", outcome.Version.ID),
		zap.Bool("complete", outcome.Complete),
		zap.Int("shortfalls", len(outcome.Shortfalls)))

	violations := roster.VerifySchedule(outcome.Version, workers, options)
	for _, v := range violations {
		logger.Warn("Schedule violation",
			zap.String("date", v.Date),
			zap.String("rule", v.Rule),
			zap.String("description", v.Description))
	}

	result := &GenerateRosterResult{
		Version:    outcome.Version,
		Shortfalls: outcome.Shortfalls,
		Complete:   outcome.Complete,
		Violations: violations,
		History:    history,
	}

	if params.ExportPath != "" {
		logger.Info("Exporting schedule", zap.String("path", params.ExportPath))
		if err := export.WriteCSVFile(params.ExportPath, outcome.Version, workers); err != nil {
			return nil, fmt.Errorf("failed to export schedule: %w", err)
		}
		result.ExportPath = params.ExportPath
	}

	return result, nil
}

// loadHistory reads and parses an exported grid into historical context
func loadHistory(path string, workers []model.Worker, logger *zap.Logger) (*model.HistoricalContext, error) {
	logger.Debug("Reading history file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}

	ctx, err := history.ParseExportedGrid(string(data), workers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", path, err)
	}
	ctx.Source = path

	logger.Debug("Parsed historical context",
		zap.Int("workers", len(ctx.Counts)),
		zap.Int("last_night_shift", len(ctx.LastNightShiftIDs)),
		zap.Int("unresolved_cells", ctx.UnresolvedCells))

	if ctx.UnresolvedCells > 0 {
		logger.Warn("History cells named workers not in the current pool",
			zap.Int("unresolved_cells", ctx.UnresolvedCells))
	}

	return ctx, nil
}

// convertRequirementOverrides converts config overrides to roster overrides.
// RRule strings are parsed and converted to date-matching functions scoped
// to the month's grid, with a week of buffer either side for the padding
// rows.
func convertRequirementOverrides(configOverrides []config.RequirementOverride, year int, month time.Month, logger *zap.Logger) ([]roster.RequirementOverride, error) {
	if len(configOverrides) == 0 {
		return nil, nil
	}

	grid := calendar.MonthGrid(year, month)
	searchStart := grid[0].Date.AddDate(0, 0, -7)
	searchEnd := grid[len(grid)-1].Date.AddDate(0, 0, 7)

	result := make([]roster.RequirementOverride, 0, len(configOverrides))
	for i, override := range configOverrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}

		rule.DTStart(searchStart)
		occurrences := rule.Between(searchStart, searchEnd, true)

		matched := make(map[string]bool, len(occurrences))
		for _, occurrence := range occurrences {
			matched[occurrence.Format(calendar.ISODate)] = true
		}

		result = append(result, roster.RequirementOverride{
			AppliesTo: func(date string) bool { return matched[date] },
			Day:       override.Day,
			Night:     override.Night,
		})

		logger.Debug("Converted requirement override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule),
			zap.Int("matched_dates", len(matched)))
	}

	return result, nil
}
