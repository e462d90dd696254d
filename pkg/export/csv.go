// Package export renders a generated schedule as the delimited grid format
// that pkg/core/history reads back, so one month's export can seed the next
// month's historical context.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/mhollis/wardshift/pkg/core/model"
)

// BuildRows flattens a schedule version into a header row plus one row per
// date. Day and night column groups are padded to the maximum headcount seen
// across all dates so every row has the same width. Worker IDs resolve to
// display names; an unknown ID falls back to the raw ID.
func BuildRows(version *model.ScheduleVersion, workers []model.Worker) [][]string {
	namesByID := make(map[string]string, len(workers))
	for _, w := range workers {
		namesByID[w.ID] = w.Name
	}

	maxDay, maxNight := 1, 1
	for _, day := range version.Days {
		if len(day.DayShift) > maxDay {
			maxDay = len(day.DayShift)
		}
		if len(day.NightShift) > maxNight {
			maxNight = len(day.NightShift)
		}
	}

	header := []string{"Date"}
	for i := 1; i <= maxDay; i++ {
		header = append(header, fmt.Sprintf("Day worker %d", i))
	}
	for i := 1; i <= maxNight; i++ {
		header = append(header, fmt.Sprintf("Night worker %d", i))
	}

	rows := [][]string{header}
	for _, day := range version.Days {
		row := []string{day.Date}
		row = appendPadded(row, day.DayShift, maxDay, namesByID)
		row = appendPadded(row, day.NightShift, maxNight, namesByID)
		rows = append(rows, row)
	}

	return rows
}

// WriteCSV writes the schedule grid to w
func WriteCSV(w io.Writer, version *model.ScheduleVersion, workers []model.Worker) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(BuildRows(version, workers)); err != nil {
		return fmt.Errorf("failed to write schedule csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the schedule grid to the given path
func WriteCSVFile(path string, version *model.ScheduleVersion, workers []model.Worker) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, version, workers)
}

func appendPadded(row, ids []string, width int, namesByID map[string]string) []string {
	for i := 0; i < width; i++ {
		if i >= len(ids) {
			row = append(row, "")
			continue
		}
		name, ok := namesByID[ids[i]]
		if !ok {
			name = ids[i]
		}
		row = append(row, name)
	}
	return row
}
