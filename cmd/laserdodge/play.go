package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/laserdodge/internal/config"
	"github.com/vovakirdan/laserdodge/internal/platform/tui"
	"github.com/vovakirdan/laserdodge/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Preview a level in the terminal",
	Long: `Previews the specified level. The mouse acts as a single touch:
press and drag to hold buttons, release to let them drain.

Controls:
  Mouse      - Press and drag to touch
  Space      - Start laser motion without touching
  P/Esc      - Pause
  R          - Restart the attempt
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - 5 lives, long zap cooldown
  normal - 3 lives
  hard   - 1 life, short zap cooldown

Examples:
  laserdodge play 01-first-touch
  laserdodge play 02-sweeper --difficulty hard
  laserdodge play 02-sweeper --config ./my-rules.yaml --fps 30`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(cmd *cobra.Command, args []string) {
	level, err := newLoader().LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'laserdodge list' to see available levels.")
		os.Exit(1)
	}

	cfg := loadConfig()
	if flagDifficulty != "" {
		preset := config.DifficultyPreset(flagDifficulty)
		switch preset {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard:
			config.ApplyPreset(&cfg, preset)
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
			os.Exit(1)
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open attempt storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open attempts database: %v\n", err)
		// Continue without storage - the preview still works
		store = nil
	}

	runErr := tui.Run(&level.Level, tui.NewSaver(store, logger), cfg, width, height)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running preview: %v\n", runErr)
		os.Exit(1)
	}
}
