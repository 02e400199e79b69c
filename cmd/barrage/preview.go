package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/barrage-tui/barrage/internal/config"
	"github.com/barrage-tui/barrage/internal/platform/tui"
)

var (
	flagPreviewFile  string
	flagPreviewSaved string
	flagPreviewSpeed string
)

var previewCmd = &cobra.Command{
	Use:   "preview [prefab]",
	Short: "Play a pattern in the terminal",
	Long: `Open the TUI previewer and play a pattern.

Controls:
  Space/P    - Pause
  R          - Restart
  +/-        - Speed up / slow down
  H          - Toggle HUD
  T          - Toggle trails
  Q/Ctrl+C   - Quit

Examples:
  barrage preview spiral-storm
  barrage preview --file bosses/opener.yaml
  barrage preview --saved my-boss
  barrage preview ring-pulse --speed slow`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagPreviewFile, "file", "", "Path to a pattern document")
	previewCmd.Flags().StringVar(&flagPreviewSaved, "saved", "", "Name of a saved library pattern")
	previewCmd.Flags().StringVar(&flagPreviewSpeed, "speed", "", "Speed preset: slow, normal, fast")
}

func runPreview(cmd *cobra.Command, args []string) {
	prefabID := ""
	if len(args) == 1 {
		prefabID = args[0]
	}

	name, p, err := resolvePattern(prefabID, flagPreviewFile, flagPreviewSaved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadPreview(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPreviewSpeed != "" {
		config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagPreviewSpeed))
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunPreview(name, p, cfg, store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
