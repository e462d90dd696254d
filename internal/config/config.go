package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/mhollis/wardshift/pkg/core/model"
)

// WorkerConfig describes one member of the scheduling pool
type WorkerConfig struct {
	ID           string `yaml:"id" validate:"required"`
	Name         string `yaml:"name" validate:"required"`
	Preference   string `yaml:"preference" validate:"required,oneof=day night either"`
	DaysOff      []int  `yaml:"daysOff,omitempty" validate:"dive,min=0,max=6"`
	TargetShifts *int   `yaml:"targetShifts,omitempty" validate:"omitempty,min=0"`
}

// RequirementConfig is the headcount for one weekday
type RequirementConfig struct {
	Day   int `yaml:"day" validate:"min=0"`
	Night int `yaml:"night" validate:"min=0"`
}

// RequirementOverride adjusts headcounts for dates matching a recurrence
// rule, e.g. extra night cover on the last Friday of every month
type RequirementOverride struct {
	RRule string `yaml:"rrule" validate:"required"`
	Day   *int   `yaml:"day,omitempty" validate:"omitempty,min=0"`
	Night *int   `yaml:"night,omitempty" validate:"omitempty,min=0"`
}

// ManualAssignmentConfig pins one date's shifts to explicit worker IDs
type ManualAssignmentConfig struct {
	DayShift   []string `yaml:"dayShift,omitempty"`
	NightShift []string `yaml:"nightShift,omitempty"`
}

// OptionsConfig tunes the generation heuristics
type OptionsConfig struct {
	PrioritizeEitherForDay bool `yaml:"prioritizeEitherForDay,omitempty"`
	MaxConsecutiveDays     int  `yaml:"maxConsecutiveDays,omitempty" validate:"omitempty,min=1"`
}

// Config represents the application configuration
type Config struct {
	Team                 string                            `yaml:"team" validate:"required"`
	Workers              []WorkerConfig                    `yaml:"workers" validate:"required,min=1,dive"`
	Requirements         map[string]RequirementConfig      `yaml:"requirements,omitempty" validate:"dive"`
	RequirementOverrides []RequirementOverride             `yaml:"requirementOverrides,omitempty" validate:"dive"`
	ManualAssignments    map[string]ManualAssignmentConfig `yaml:"manualAssignments,omitempty"`
	Options              OptionsConfig                     `yaml:"options,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load loads and validates the configuration from wardshift_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct plus the cross-field rules the
// struct tags cannot express: unique worker IDs, known weekday keys,
// parseable rrules, ISO manual-assignment dates, and manual IDs that exist
// in the pool
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Workers))
	for _, w := range cfg.Workers {
		if seen[w.ID] {
			return fmt.Errorf("duplicate worker id %q", w.ID)
		}
		seen[w.ID] = true
	}

	for key := range cfg.Requirements {
		if _, ok := weekdayNames[strings.ToLower(key)]; !ok {
			return fmt.Errorf("unknown weekday %q in requirements", key)
		}
	}

	for i, override := range cfg.RequirementOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in requirementOverrides[%d]: %w", i, err)
		}
		if override.Day == nil && override.Night == nil {
			return fmt.Errorf("requirementOverrides[%d] sets neither day nor night", i)
		}
	}

	for date, manual := range cfg.ManualAssignments {
		if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
			return fmt.Errorf("manual assignment date %q is not YYYY-MM-DD: %w", date, err)
		}
		for _, id := range append(append([]string(nil), manual.DayShift...), manual.NightShift...) {
			if !seen[id] {
				return fmt.Errorf("manual assignment for %s references unknown worker %q", date, id)
			}
		}
	}

	return nil
}

// ToWorkers converts the configured pool to domain workers
func (c *Config) ToWorkers() []model.Worker {
	workers := make([]model.Worker, len(c.Workers))
	for i, w := range c.Workers {
		daysOff := make([]time.Weekday, len(w.DaysOff))
		for j, d := range w.DaysOff {
			daysOff[j] = time.Weekday(d)
		}
		workers[i] = model.Worker{
			ID:           w.ID,
			Name:         w.Name,
			Preference:   model.ShiftPreference(w.Preference),
			DaysOff:      daysOff,
			TargetShifts: w.TargetShifts,
		}
	}
	return workers
}

// ToRequirements converts the weekday table to domain requirements
func (c *Config) ToRequirements() model.Requirements {
	reqs := make(model.Requirements, len(c.Requirements))
	for key, r := range c.Requirements {
		weekday := weekdayNames[strings.ToLower(key)]
		reqs[weekday] = model.DayRequirement{Day: r.Day, Night: r.Night}
	}
	return reqs
}

// ToManualAssignments converts the pinned dates to the domain form
func (c *Config) ToManualAssignments() model.ManualAssignments {
	if len(c.ManualAssignments) == 0 {
		return nil
	}
	manual := make(model.ManualAssignments, len(c.ManualAssignments))
	for date, m := range c.ManualAssignments {
		manual[date] = model.ManualAssignment{
			DayShift:   append([]string(nil), m.DayShift...),
			NightShift: append([]string(nil), m.NightShift...),
		}
	}
	return manual
}

// findConfigFile searches for wardshift_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "wardshift_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
