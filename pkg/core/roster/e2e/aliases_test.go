package e2e

import (
	"github.com/mhollis/wardshift/pkg/core/history"
	"github.com/mhollis/wardshift/pkg/core/model"
	"github.com/mhollis/wardshift/pkg/core/roster"
)

// Type aliases to avoid prefixing everything with model/roster.
type (
	Worker            = model.Worker
	HistoricalContext = model.HistoricalContext
	ManualAssignment  = model.ManualAssignment
	ManualAssignments = model.ManualAssignments
	Requirements      = model.Requirements
	DayRequirement    = model.DayRequirement
	GenerateConfig    = roster.GenerateConfig
	Options           = roster.Options
)

// Function aliases
var (
	Generate          = roster.Generate
	VerifySchedule    = roster.VerifySchedule
	ParseExportedGrid = history.ParseExportedGrid
)
