package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/marbles/internal/games/marbles"
	"github.com/vovakirdan/marbles/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game variants",
	Long:  `Shows every registered variant with its board and rules.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	applyGameFlags()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	for _, g := range games {
		var rules string
		if s, err := marbles.ResolveSettings(g.ID); err == nil {
			rules = fmt.Sprintf("%dx%d, %d colors, %d per turn, lines of %d",
				s.Width, s.Height, s.Colors, s.SpawnCount, s.LineLength)
		} else {
			rules = "invalid config: " + err.Error()
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, rules)
	}

	fmt.Println()
	fmt.Println("Run 'marbles play <id>' to play a variant.")
}
