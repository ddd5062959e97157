package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserdodge/internal/levels"
	"github.com/vovakirdan/laserdodge/internal/sim"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate level files",
	Long: `Checks level files and lists every problem found, so a broken file
can be fixed in one pass. Arguments may be files or directories; without
arguments the levels directory is checked.

Examples:
  laserdodge validate
  laserdodge validate levels/02-sweeper.json
  laserdodge validate levels/ drafts/`,
	Run: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	paths, err := collectLevelFiles(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Println("No level files found.")
		return
	}

	loader := newLoader()
	bad := 0
	for _, path := range paths {
		_, err := loader.LoadFile(path)
		if err == nil {
			fmt.Printf("%s: ok\n", path)
			continue
		}
		bad++

		var report *sim.ValidationReport
		if errors.As(err, &report) {
			fmt.Printf("%s: %d problem(s)\n", path, len(report.Problems))
			for _, p := range report.Problems {
				fmt.Printf("  %s\n", p.Error())
			}
			continue
		}
		fmt.Printf("%s: %v\n", path, err)
	}

	fmt.Println()
	if bad > 0 {
		fmt.Printf("%d of %d files failed validation.\n", bad, len(paths))
		os.Exit(1)
	}
	fmt.Printf("All %d files valid.\n", len(paths))
}

// collectLevelFiles expands the arguments into level file paths. Directories
// contribute every file with a supported extension; files are taken as given
// so an unsupported extension still gets a proper error. No arguments means
// the levels directory.
func collectLevelFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{flagLevels}
	}
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		files, err := levels.NewLoader(arg).Files()
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}
