package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows every loadable level in the levels directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	all, err := newLoader().LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading levels: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Printf("No levels found in %s.\n", flagLevels)
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2   // "ID" header
	maxNameLen := 4 // "Name" header
	for _, lvl := range all {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %7s  %6s  %8s\n", maxIDLen, "ID", maxNameLen, "Name", "Buttons", "Lasers", "Required")
	fmt.Printf("  %-*s  %-*s  %7s  %6s  %8s\n", maxIDLen, "--", maxNameLen, "----", "-------", "------", "--------")

	// Print levels
	for _, lvl := range all {
		required := 0
		for _, b := range lvl.Buttons {
			if b.Required {
				required++
			}
		}
		// No button marked required means every button counts.
		if required == 0 {
			required = len(lvl.Buttons)
		}
		fmt.Printf("  %-*s  %-*s  %7d  %6d  %8d\n",
			maxIDLen, lvl.ID, maxNameLen, lvl.Name, len(lvl.Buttons), len(lvl.Lasers), required)
	}

	fmt.Println()
	fmt.Println("Run 'laserdodge play <id>' to preview a level.")
}
