package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/prefab"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in pattern prefabs",
	Long:  `Shows all pattern prefabs registered in the workbench.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	prefabs := prefab.List()

	if len(prefabs) == 0 {
		fmt.Println("No prefabs available.")
		return
	}

	fmt.Println("Available patterns:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range prefabs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")

	for _, p := range prefabs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Description)
	}

	fmt.Println()
	fmt.Println("Run 'barrage preview <id>' to watch a pattern.")
}
