package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/codec"
	"github.com/barrage-tui/barrage/internal/library"
	"github.com/barrage-tui/barrage/internal/pattern"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a pattern document",
	Long: `Parse a pattern document and report what is wrong with it, if
anything. The exit code is non-zero for invalid documents.

Examples:
  barrage validate bosses/opener.yaml
  barrage validate exported.json`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	path := args[0]

	entry, err := library.NewLoader(".").LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: INVALID\n", path)
		switch {
		case errors.Is(err, codec.ErrUnknownVariant):
			fmt.Fprintf(os.Stderr, "  unknown pattern type: %v\n", err)
		case errors.Is(err, codec.ErrMissingField):
			fmt.Fprintf(os.Stderr, "  missing field: %v\n", err)
		case errors.Is(err, pattern.ErrInvalidArgument):
			fmt.Fprintf(os.Stderr, "  invalid parameter: %v\n", err)
		case errors.Is(err, codec.ErrMalformed):
			fmt.Fprintf(os.Stderr, "  malformed document: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "  %v\n", err)
		}
		os.Exit(1)
	}

	p := entry.Pattern
	dur := "infinite"
	if !p.Looping() {
		dur = fmt.Sprintf("%.2fs", p.Duration())
	}
	fmt.Printf("%s: OK  (duration: %s, looping: %v)\n", path, dur, p.Looping())
}
