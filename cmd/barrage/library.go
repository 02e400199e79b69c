package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the saved pattern library",
	Long: `Save pattern documents into the SQLite library, list them, print
them back, and remove them.

Examples:
  barrage library save my-boss bosses/opener.yaml
  barrage library list
  barrage library show my-boss
  barrage library rm my-boss`,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <name> <file>",
	Short: "Save a pattern document under a name",
	Args:  cobra.ExactArgs(2),
	Run:   runLibrarySave,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved patterns",
	Run:   runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved pattern document",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryShow,
}

var libraryRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a saved pattern",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryRm,
}

func init() {
	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryRmCmd)
}

func runLibrarySave(cmd *cobra.Command, args []string) {
	name, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ext := strings.ToLower(filepath.Ext(path))
	// Reject documents that don't parse; the library stores only valid ones.
	if _, err := library.ParseBytes(data, ext); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	format := "json"
	if ext == ".yaml" || ext == ".yml" {
		format = "yaml"
	}

	store := mustStore()
	defer store.Close()

	if _, err := store.SavePattern(name, format, string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("saved %q\n", name)
}

func runLibraryList(cmd *cobra.Command, args []string) {
	store := mustStore()
	defer store.Close()

	entries, err := store.ListPatterns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("Library is empty. Save a pattern with 'barrage library save'.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, e := range entries {
		if len(e.Name) > maxNameLen {
			maxNameLen = len(e.Name)
		}
	}

	fmt.Printf("  %-*s  %-6s  %s\n", maxNameLen, "Name", "Format", "Updated")
	fmt.Printf("  %-*s  %-6s  %s\n", maxNameLen, "----", "------", "-------")
	for _, e := range entries {
		fmt.Printf("  %-*s  %-6s  %s\n", maxNameLen, e.Name, e.Format,
			e.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func runLibraryShow(cmd *cobra.Command, args []string) {
	store := mustStore()
	defer store.Close()

	entry, err := store.GetPattern(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "Error: no saved pattern named %q\n", args[0])
		os.Exit(1)
	}

	fmt.Println(entry.Document)
}

func runLibraryRm(cmd *cobra.Command, args []string) {
	store := mustStore()
	defer store.Close()

	deleted, err := store.DeletePattern(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !deleted {
		fmt.Fprintf(os.Stderr, "Error: no saved pattern named %q\n", args[0])
		os.Exit(1)
	}
	fmt.Printf("removed %q\n", args[0])
}
