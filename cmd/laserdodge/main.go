// laserdodge is a toolchain for authoring and previewing laser dodge levels
// in the terminal.
//
// Usage:
//
//	laserdodge list                 - List levels in the levels directory
//	laserdodge validate [path...]   - Validate level files and report problems
//	laserdodge simulate <level>     - Run a scripted attempt without a terminal
//	laserdodge play <level>         - Preview a level with the mouse
//	laserdodge stats [level]        - Show recorded attempt statistics
//
// Global flags:
//
//	--levels <dir>   - Levels directory (default: ./levels)
//	--db <path>      - Attempts database (default: ~/.laserdodge/attempts.db)
//	--config <path>  - Custom config YAML
//	--fps <rate>     - Override tick rate for play (0 = from config)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserdodge/internal/config"
	"github.com/vovakirdan/laserdodge/internal/levels"
)

var (
	// Global flags
	flagLevels string
	flagDBPath string
	flagConfig string
	flagFPS    int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "laserdodge",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "laserdodge",
	Short: "Laser Dodge - author, test and preview touch-dodging levels",
	Long: `Laser Dodge is a toolchain for levels where players hold buttons to
charge them while dodging moving lasers.

Available commands:
  list      - Show all levels in the levels directory
  validate  - Check level files and list every problem found
  simulate  - Replay a scripted touch timeline headlessly
  play      - Preview a level in the terminal with the mouse
  stats     - View recorded attempt statistics

Examples:
  laserdodge list
  laserdodge validate levels/
  laserdodge simulate 02-sweeper --script scripts/sweeper-gate.yaml
  laserdodge play 01-first-touch
  laserdodge stats 02-sweeper`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "./levels", "Levels directory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.laserdodge/attempts.db", "Path to attempts database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override for play (0 = from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
}

// newLoader builds the level loader for the --levels directory.
func newLoader() *levels.Loader {
	l := levels.NewLoader(flagLevels)
	l.Log = logger
	return l
}

// loadConfig loads the configuration, applying the --fps override. An
// explicit --config path that cannot be loaded is fatal; the implicit
// search locations fall back to defaults silently.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagFPS > 0 {
		cfg.Runtime.TickRate = flagFPS
	}
	return cfg
}
