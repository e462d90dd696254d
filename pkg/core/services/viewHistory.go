package services

import (
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/internal/config"
	"github.com/mhollis/wardshift/pkg/core/model"
)

// ViewHistoryResult pairs the parsed context with the pool it was resolved
// against, so callers can render names instead of IDs
type ViewHistoryResult struct {
	Context *model.HistoricalContext
	Workers []model.Worker
}

// ViewHistory parses an exported grid against the configured pool and
// returns the accumulated context for display
func ViewHistory(cfg *config.Config, logger *zap.Logger, path string) (*ViewHistoryResult, error) {
	workers := cfg.ToWorkers()

	ctx, err := loadHistory(path, workers, logger)
	if err != nil {
		return nil, err
	}

	return &ViewHistoryResult{
		Context: ctx,
		Workers: workers,
	}, nil
}
