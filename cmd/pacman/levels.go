package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pacman/internal/games/pacman"
	"github.com/vovakirdan/tui-pacman/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows the built-in levels and the game modes scores are kept for.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-2s  %-10s  %s\n", "#", "Name", "Scores")
	fmt.Printf("  %-2s  %-10s  %s\n", "-", "----", "------")
	for level := 0; level < pacman.LevelCount; level++ {
		fmt.Printf("  %-2d  %-10s  %s\n", level+1, pacman.LevelName(level), gameForLevel(level))
	}

	fmt.Println()
	fmt.Println("Game modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-14s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pacman play <name or #>' to play a level.")
}

// gameForLevel returns the registry ID scores for level are kept under.
func gameForLevel(level int) string {
	return pacman.GameIDForLevel(level)
}
