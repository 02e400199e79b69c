package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/codec"
)

var (
	flagExportOut    string
	flagExportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <prefab>",
	Short: "Serialize a prefab to JSON or YAML",
	Long: `Write a prefab's pattern document to a file or stdout. Exported
documents round-trip through 'barrage validate' and 'barrage preview --file'.

Examples:
  barrage export crossfire
  barrage export spiral-storm --format yaml
  barrage export ring-pulse --out ring.json`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportOut, "out", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "json", "Output format: json or yaml")
}

func runExport(cmd *cobra.Command, args []string) {
	_, p, err := resolvePattern(args[0], "", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var data []byte
	switch flagExportFormat {
	case "json":
		data, err = codec.Marshal(p)
	case "yaml", "yml":
		data, err = codec.MarshalYAML(p)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (json or yaml)\n", flagExportFormat)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagExportOut == "" {
		fmt.Printf("%s\n", data)
		return
	}

	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", flagExportOut)
}
