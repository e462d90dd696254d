// Package history rebuilds scheduling context from a previously exported
// roster grid, so constraints that span a month boundary still hold at the
// start of a new schedule.
package history

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/mhollis/wardshift/pkg/core/model"
)

// ParseExportedGrid parses a roster export (header row plus one row per
// date) into a HistoricalContext for the given worker pool.
//
// Columns are located by their header text: a normalized header containing
// "night" is treated as a night-shift column, otherwise one containing "day"
// as a day-shift column. Cell values are resolved to worker IDs by exact
// case-insensitive name match against the pool; cells naming nobody in the
// pool are skipped silently and counted in UnresolvedCells.
//
// Fails only when the input has fewer than a header line and one data line.
func ParseExportedGrid(raw string, workers []model.Worker) (*model.HistoricalContext, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")

	rows, err := readRows(raw)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("history grid needs a header row and at least one data row, got %d rows", len(rows))
	}

	header := rows[0]
	dataRows := rows[1:]

	dayCols, nightCols := classifyColumns(header)

	// Worker lookup by lower-cased name
	workersByName := make(map[string]string, len(workers))
	for _, w := range workers {
		workersByName[strings.ToLower(strings.TrimSpace(w.Name))] = w.ID
	}

	ctx := &model.HistoricalContext{
		Counts:          make(map[string]model.ShiftCounts, len(workers)),
		ConsecutiveDays: make(map[string]int, len(workers)),
	}
	for _, w := range workers {
		ctx.Counts[w.ID] = model.ShiftCounts{}
		ctx.ConsecutiveDays[w.ID] = 0
	}

	for rowIdx, row := range dataRows {
		dayIDs := resolveCells(row, dayCols, workersByName, ctx)
		nightIDs := resolveCells(row, nightCols, workersByName, ctx)

		for _, id := range dayIDs {
			c := ctx.Counts[id]
			c.Day++
			c.Total++
			ctx.Counts[id] = c
		}
		for _, id := range nightIDs {
			c := ctx.Counts[id]
			c.Night++
			c.Total++
			ctx.Counts[id] = c
		}

		workedToday := make(map[string]bool, len(dayIDs)+len(nightIDs))
		for _, id := range dayIDs {
			workedToday[id] = true
		}
		for _, id := range nightIDs {
			workedToday[id] = true
		}

		// Streaks: a row where the worker appears extends the run,
		// any other row resets it
		for _, w := range workers {
			if workedToday[w.ID] {
				ctx.ConsecutiveDays[w.ID]++
			} else {
				ctx.ConsecutiveDays[w.ID] = 0
			}
		}

		if rowIdx == len(dataRows)-1 {
			ctx.LastNightShiftIDs = nightIDs
		}
	}

	return ctx, nil
}

// readRows splits the raw export into rows of cells, respecting quoted
// fields that contain the delimiter
func readRows(raw string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse history grid: %w", err)
	}

	// Drop fully empty rows (trailing newlines, spacer lines)
	filtered := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			filtered = append(filtered, row)
		}
	}

	return filtered, nil
}

// classifyColumns returns the indices of day-shift and night-shift worker
// columns, identified by substring match on the normalized header text.
// "night" is checked first since it never appears in a day-column label,
// while a label like "Night worker" must not be misread as a day column.
func classifyColumns(header []string) (dayCols, nightCols []int) {
	for i, cell := range header {
		label := normalizeHeader(cell)
		if !strings.Contains(label, "worker") {
			continue
		}
		switch {
		case strings.Contains(label, "night"):
			nightCols = append(nightCols, i)
		case strings.Contains(label, "day"):
			dayCols = append(dayCols, i)
		}
	}
	return dayCols, nightCols
}

func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	cell = strings.ReplaceAll(cell, `"`, "")
	cell = strings.ReplaceAll(cell, "'", "")
	return cell
}

// resolveCells maps the given columns of a row to worker IDs. Unresolvable
// non-empty cells are counted but otherwise ignored.
func resolveCells(row []string, cols []int, workersByName map[string]string, ctx *model.HistoricalContext) []string {
	var ids []string
	for _, col := range cols {
		if col >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[col])
		if name == "" {
			continue
		}
		id, ok := workersByName[strings.ToLower(name)]
		if !ok {
			ctx.UnresolvedCells++
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
