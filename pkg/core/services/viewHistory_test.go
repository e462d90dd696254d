package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/pkg/core/model"
)

func TestViewHistory(t *testing.T) {
	logger := zap.NewNop()

	historyPath := filepath.Join(t.TempDir(), "january.csv")
	raw := "Date,Day worker 1,Night worker 1\n" +
		"2024-01-26,Alice Mensah,Bruno Costa\n" +
		"2024-01-27,Alice Mensah,Someone Unknown\n"
	require.NoError(t, os.WriteFile(historyPath, []byte(raw), 0644))

	result, err := ViewHistory(serviceConfig(), logger, historyPath)
	require.NoError(t, err)

	assert.Len(t, result.Workers, 4)
	assert.Equal(t, historyPath, result.Context.Source)
	assert.Equal(t, model.ShiftCounts{Day: 2, Night: 0, Total: 2}, result.Context.Counts["alice"])
	assert.Equal(t, 2, result.Context.ConsecutiveDays["alice"])
	assert.Equal(t, 1, result.Context.UnresolvedCells)
	assert.Empty(t, result.Context.LastNightShiftIDs, "the final night cell resolved to nobody")
}

func TestViewHistory_MissingFile(t *testing.T) {
	logger := zap.NewNop()

	_, err := ViewHistory(serviceConfig(), logger, filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read history file")
}
