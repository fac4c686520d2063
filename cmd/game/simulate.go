package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var (
	flagTicks    int
	flagCopy     bool
	flagUntilWin bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless skirmish and print a report",
	Long: `Run the configured scenario without a window. Player units get no
orders, so this mostly exercises the AI, combat and movement.

Examples:
  game simulate
  game simulate --ticks 600 --log-level debug
  game simulate --until-win=false --copy`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Number of fixed ticks to run")
	simulateCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the plain report to the clipboard")
	simulateCmd.Flags().BoolVar(&flagUntilWin, "until-win", true, "Stop early once one team is wiped out")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", flagTicks)
	}
	s, _, err := setup()
	if err != nil {
		return err
	}

	ran := 0
	for ran < flagTicks {
		ran += s.RunTicks(1)
		if _, done := s.Winner(); done && flagUntilWin {
			break
		}
	}
	s.Stats.Summary(s.Logger())

	report := NewReport(s, ran)
	fmt.Fprintln(cmd.OutOrStdout(), report.Render())

	if flagCopy {
		if err := clipboard.WriteAll(report.String()); err != nil {
			s.Logger().Warn("could not copy report", "error", err)
		} else {
			s.Logger().Info("report copied to clipboard")
		}
	}
	return nil
}
