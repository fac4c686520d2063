// game is a small real-time strategy core on a height-mapped terrain.
//
// Usage:
//
//	game                     - Open the viewer (same as play)
//	game play                - Open the viewer
//	game simulate            - Run a headless skirmish and print a report
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: embedded)
//	--map <path>        - BMP or PNG height raster, overrides terrain.path
//	--log-level <level> - debug, info, warn, error (default: info)
//	--seed <value>      - Seed for synthesized terrain
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/1siamBot/terrain-rts/engine/config"
	"github.com/1siamBot/terrain-rts/engine/core"
	"github.com/1siamBot/terrain-rts/engine/sim"
)

var (
	// Global flags
	flagConfig   string
	flagMap      string
	flagLogLevel string
	flagSeed     uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "Terrain RTS - select and command units on a height-mapped battlefield",
	Long: `Terrain RTS runs a small real-time strategy skirmish on a terrain
built from a height raster. Player units take orders from the mouse, AI
units hunt the nearest player unit and run when badly hurt.

Available commands:
  play      - Open the viewer (default)
  simulate  - Run headless and print a battle report

Examples:
  game
  game play --map ./maps/valley.bmp
  game simulate --ticks 7200 --log-level debug
  game simulate --config ./my-game.yaml --copy`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMap, "map", "", "Path to a BMP or PNG height raster")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Seed for synthesized terrain (0 = default hills)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rts",
		Level:           level,
	})
	return logger, nil
}

// setup loads the config and builds a populated simulation
func setup() (*sim.Simulation, *log.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagMap != "" {
		cfg.Terrain.Path = flagMap
	}

	s, err := sim.New(cfg, flagSeed, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := s.SpawnScenario(); err != nil {
		if errors.Is(err, core.ErrRegistryFull) {
			s.Logger().Fatal("scenario does not fit", "max_units", cfg.Sim.MaxUnits, "error", err)
		}
		return nil, nil, err
	}
	return s, logger, nil
}
