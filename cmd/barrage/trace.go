package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/geom"
	"github.com/barrage-tui/barrage/internal/pattern"
)

var (
	flagTraceFile  string
	flagTraceSaved string
	flagTraceUntil float64
	flagTraceStep  float64
)

var traceCmd = &cobra.Command{
	Use:   "trace [prefab]",
	Short: "Print spawn events as text",
	Long: `Step a pattern's timeline in fixed windows and print every spawn
it produces, the same way a game loop would consume it.

Examples:
  barrage trace ring-pulse
  barrage trace spiral-storm --until 2 --step 0.05
  barrage trace --file bosses/opener.yaml --until 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&flagTraceFile, "file", "", "Path to a pattern document")
	traceCmd.Flags().StringVar(&flagTraceSaved, "saved", "", "Name of a saved library pattern")
	traceCmd.Flags().Float64Var(&flagTraceUntil, "until", 5, "Seconds of timeline to trace")
	traceCmd.Flags().Float64Var(&flagTraceStep, "step", 0.1, "Window size in seconds")
}

func runTrace(cmd *cobra.Command, args []string) {
	prefabID := ""
	if len(args) == 1 {
		prefabID = args[0]
	}

	name, p, err := resolvePattern(prefabID, flagTraceFile, flagTraceSaved)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagTraceStep <= 0 || flagTraceUntil <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --until and --step must be positive")
		os.Exit(1)
	}

	dur := "infinite"
	if !p.Looping() {
		dur = fmt.Sprintf("%.2fs", p.Duration())
	}
	fmt.Printf("%s  (duration: %s)\n\n", name, dur)

	ctx := pattern.Context{
		Origin:    geom.V(0, 0),
		Target:    geom.V(100, 0),
		HasTarget: true,
	}

	total := 0
	for last := 0.0; last < flagTraceUntil; last += flagTraceStep {
		current := math.Min(last+flagTraceStep, flagTraceUntil)
		spawns := p.Query(last, current, ctx.WithAge(current))
		if len(spawns) == 0 {
			continue
		}

		fmt.Printf("[%6.2f, %6.2f)\n", last, current)
		for _, s := range spawns {
			fmt.Printf("  angle=%6.1f  speed=%6.1f  dir=(%+.2f, %+.2f)  pos=(%+.1f, %+.1f)\n",
				s.Angle, s.Speed, s.Dir.X, s.Dir.Y, s.Pos.X, s.Pos.Y)
		}
		total += len(spawns)

		if !p.Looping() && current > p.Duration() {
			break
		}
	}

	fmt.Printf("\n%d spawns in %.2fs\n", total, flagTraceUntil)
}
