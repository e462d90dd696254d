package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhollis/wardshift/cmd/cli/commands"
	"github.com/mhollis/wardshift/internal/config"
	"github.com/mhollis/wardshift/pkg/utils/logging"
)

var (
	configPath string
	verbose    bool
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wardshift",
		Short: "Wardshift - Generate monthly day/night shift rosters",
		Long:  `A CLI tool for generating monthly day/night shift rosters with rest rules, availability, fairness balancing, and month-boundary history.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the roster config file (default: wardshift_config.yaml in cwd or home)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.GenerateRosterCmd(app))
	rootCmd.AddCommand(commands.ViewHistoryCmd(app))
	rootCmd.AddCommand(commands.ListWorkersCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and loads the configuration
func initApp() error {
	var err error

	app.Logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration")
	if configPath != "" {
		app.Cfg, err = config.LoadFromPath(configPath)
	} else {
		app.Cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Configuration loaded",
		zap.String("team", app.Cfg.Team),
		zap.Int("workers", len(app.Cfg.Workers)))

	return nil
}
