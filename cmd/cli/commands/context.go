package commands

import (
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/internal/config"
)

// AppContext holds the application dependencies shared by all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
}
