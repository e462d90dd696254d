package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhollis/wardshift/pkg/core/history"
	"github.com/mhollis/wardshift/pkg/core/model"
)

func sampleWorkers() []model.Worker {
	return []model.Worker{
		{ID: "alice", Name: "Alice Mensah", Preference: model.PreferenceEither},
		{ID: "bruno", Name: "Bruno Costa", Preference: model.PreferenceEither},
		{ID: "carmen", Name: "Carmen Ruiz", Preference: model.PreferenceDayOnly},
	}
}

func sampleVersion() *model.ScheduleVersion {
	return &model.ScheduleVersion{
		ID: "v1",
		Days: []model.DailySchedule{
			{Date: "2024-02-01", DayShift: []string{"alice", "carmen"}, NightShift: []string{"bruno"}},
			{Date: "2024-02-02", DayShift: []string{"bruno"}, NightShift: []string{"alice"}},
		},
	}
}

func TestBuildRows_HeaderMatchesWidestDay(t *testing.T) {
	rows := BuildRows(sampleVersion(), sampleWorkers())

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Day worker 1", "Day worker 2", "Night worker 1"}, rows[0])
	assert.Equal(t, []string{"2024-02-01", "Alice Mensah", "Carmen Ruiz", "Bruno Costa"}, rows[1])
	assert.Equal(t, []string{"2024-02-02", "Bruno Costa", "", "Alice Mensah"}, rows[2])
}

func TestBuildRows_UnknownIDFallsBackToRawID(t *testing.T) {
	version := &model.ScheduleVersion{
		Days: []model.DailySchedule{
			{Date: "2024-02-01", DayShift: []string{"ghost"}},
		},
	}

	rows := BuildRows(version, sampleWorkers())
	assert.Equal(t, "ghost", rows[1][1])
}

func TestBuildRows_EmptyScheduleStillHasColumns(t *testing.T) {
	version := &model.ScheduleVersion{
		Days: []model.DailySchedule{
			{Date: "2024-02-01"},
		},
	}

	rows := BuildRows(version, nil)
	assert.Equal(t, []string{"Date", "Day worker 1", "Night worker 1"}, rows[0])
	assert.Equal(t, []string{"2024-02-01", "", ""}, rows[1])
}

func TestWriteCSV_RoundTripsThroughHistoryParser(t *testing.T) {
	workers := sampleWorkers()
	version := sampleVersion()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, version, workers))

	ctx, err := history.ParseExportedGrid(buf.String(), workers)
	require.NoError(t, err)

	assert.Equal(t, model.ShiftCounts{Day: 1, Night: 1, Total: 2}, ctx.Counts["alice"])
	assert.Equal(t, model.ShiftCounts{Day: 1, Night: 1, Total: 2}, ctx.Counts["bruno"])
	assert.Equal(t, model.ShiftCounts{Day: 1, Night: 0, Total: 1}, ctx.Counts["carmen"])
	assert.Equal(t, []string{"alice"}, ctx.LastNightShiftIDs)
	assert.Zero(t, ctx.UnresolvedCells)
}

func TestWriteCSV_QuotesNamesContainingDelimiters(t *testing.T) {
	workers := []model.Worker{
		{ID: "a", Name: "Mensah, Alice", Preference: model.PreferenceEither},
	}
	version := &model.ScheduleVersion{
		Days: []model.DailySchedule{
			{Date: "2024-02-01", DayShift: []string{"a"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, version, workers))
	assert.Contains(t, buf.String(), `"Mensah, Alice"`)

	ctx, err := history.ParseExportedGrid(buf.String(), workers)
	require.NoError(t, err)
	assert.Equal(t, 1, ctx.Counts["a"].Day)
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "february.csv")

	require.NoError(t, WriteCSVFile(path, sampleVersion(), sampleWorkers()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Day worker 1,Day worker 2,Night worker 1")
	assert.Contains(t, string(data), "2024-02-01,Alice Mensah,Carmen Ruiz,Bruno Costa")
}

func TestWriteCSVFile_BadPath(t *testing.T) {
	err := WriteCSVFile(filepath.Join(t.TempDir(), "missing", "out.csv"), sampleVersion(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create export file")
}
