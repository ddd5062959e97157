package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserdodge/internal/script"
	"github.com/vovakirdan/laserdodge/internal/session"
	"github.com/vovakirdan/laserdodge/internal/storage"
)

var (
	flagScript string
	flagSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Run a scripted attempt against a level",
	Long: `Replays a recorded touch timeline against a level without a terminal,
logging every button transition, laser change and zap, then reports the
outcome. The same script against the same level always produces the same
result, which makes simulate useful for checking that a level is beatable.

Scripts are YAML files:

  name: charge the gate
  dt: 0.125       # step size in seconds (default 1/60)
  duration: 10    # simulated seconds to run for
  viewport:       # pixel size to simulate at (default 800x600)
    width: 800
    height: 600
  timeline:       # each entry replaces the whole touch set
    - at: 0.5
      touches:
        - id: finger
          x: 0.0  # normalized author coordinates
          y: 0.55
    - at: 4.0     # an entry without touches lifts every finger

Examples:
  laserdodge simulate 02-sweeper --script scripts/sweeper-gate.yaml
  laserdodge simulate 03-spin-lock --script scripts/spin-lock-duo.yaml --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Path to the touch script YAML (required)")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the result in the attempts database")
}

func runSimulate(cmd *cobra.Command, args []string) {
	if flagScript == "" {
		fmt.Fprintln(os.Stderr, "Error: --script is required")
		os.Exit(1)
	}

	level, err := newLoader().LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'laserdodge list' to see available levels.")
		os.Exit(1)
	}

	sc, err := script.Load(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	res, err := sc.Run(&level.Level, cfg.Session, func(now float64, frame session.Frame) {
		stamp := fmt.Sprintf("%.2f", now)
		for _, ev := range frame.Step.Buttons {
			logger.Info("button", "t", stamp, "id", ev.ButtonID, "transition", ev.Transition)
		}
		for _, ev := range frame.Step.Lasers {
			logger.Info("laser", "t", stamp, "id", ev.LaserID, "firing", ev.Firing)
		}
		for _, z := range frame.Zaps {
			logger.Info("zap", "t", stamp, "touch", z.TouchID, "laser", z.LaserID, "lives", frame.Lives)
		}
		if frame.Step.DanglingEffects > 0 {
			logger.Warn("effects referenced missing lasers", "t", stamp, "count", frame.Step.DanglingEffects)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Outcome:  %s\n", res.Summary.Outcome)
	fmt.Printf("Fill:     %.0f%%\n", res.Summary.Fill*100)
	fmt.Printf("Duration: %.2fs over %d frames\n", res.Elapsed, res.Frames)
	fmt.Printf("Zaps:     %d\n", res.Summary.Zaps)

	if !flagSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening attempts database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	attempt := storage.Attempt{
		ID:       res.Summary.AttemptID,
		LevelID:  res.Summary.LevelID,
		Outcome:  string(res.Summary.Outcome),
		Fill:     res.Summary.Fill,
		Duration: res.Summary.Duration,
		Zaps:     res.Summary.Zaps,
	}
	if err := store.SaveAttempt(attempt); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving attempt: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Saved to attempts database.")
}
