// barrage is a workbench for composing and previewing projectile spawn
// patterns in the terminal.
//
// Usage:
//
//	barrage list                  - List built-in pattern prefabs
//	barrage preview <prefab>      - Play a pattern in the terminal
//	barrage trace <prefab>        - Print spawn events as text
//	barrage validate <file>       - Check a pattern document
//	barrage export <prefab>       - Serialize a prefab to JSON or YAML
//	barrage library <subcommand>  - Manage the saved pattern library
//	barrage serve                 - Start the SSH workbench server
//
// Global flags:
//
//	--db <path>      - Library database path (default: ~/.barrage/library.db)
//	--config <path>  - Previewer config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/library"
	"github.com/barrage-tui/barrage/internal/pattern"
	"github.com/barrage-tui/barrage/internal/prefab"
	"github.com/barrage-tui/barrage/internal/storage"
)

var (
	// Global flags
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "barrage",
	Short: "Compose and preview projectile spawn patterns in your terminal",
	Long: `Barrage is a terminal workbench for bullet-pattern design: compose
spawn patterns from rings, spirals, bursts and combinators, watch them
play in the terminal, and keep a library of saved documents.

Available commands:
  list      - Show built-in pattern prefabs
  preview   - Play a pattern in the terminal
  trace     - Print spawn events as text
  validate  - Check a pattern document
  export    - Serialize a prefab to JSON or YAML
  library   - Manage the saved pattern library
  serve     - Start SSH server for remote preview

Examples:
  barrage list
  barrage preview spiral-storm
  barrage preview --file bosses/opener.yaml
  barrage trace ring-pulse --until 3 --step 0.1
  barrage export crossfire --format yaml
  barrage serve --ssh :23235`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.barrage/library.db", "Path to library database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to previewer config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(serveCmd)
}

// openStore opens the library database, returning nil on failure so
// commands that only read prefabs keep working without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return store
}

// mustStore opens the library database or exits.
func mustStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return store
}

// resolvePattern builds a pattern from a prefab ID, a document file, or a
// saved library entry. Exactly one source must be given.
func resolvePattern(prefabID, filePath, savedName string) (string, pattern.Pattern, error) {
	sources := 0
	if prefabID != "" {
		sources++
	}
	if filePath != "" {
		sources++
	}
	if savedName != "" {
		sources++
	}
	if sources != 1 {
		return "", nil, fmt.Errorf("specify exactly one of <prefab>, --file, or --saved")
	}

	switch {
	case filePath != "":
		entry, err := library.NewLoader(".").LoadFile(filePath)
		if err != nil {
			return "", nil, err
		}
		return entry.Name, entry.Pattern, nil

	case savedName != "":
		store := mustStore()
		defer store.Close()

		entry, err := store.GetPattern(savedName)
		if err != nil {
			return "", nil, err
		}
		if entry == nil {
			return "", nil, fmt.Errorf("no saved pattern named %q", savedName)
		}
		p, err := library.ParseBytes([]byte(entry.Document), "."+entry.Format)
		if err != nil {
			return "", nil, fmt.Errorf("saved pattern %q: %w", savedName, err)
		}
		return savedName, p, nil

	default:
		if !prefab.Exists(prefabID) {
			return "", nil, fmt.Errorf("unknown prefab %q, run 'barrage list'", prefabID)
		}
		p, err := prefab.Build(prefabID)
		if err != nil {
			return "", nil, err
		}
		return prefabID, p, nil
	}
}
