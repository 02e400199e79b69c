package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/barrage-tui/barrage/internal/platform/tui"
)

var (
	flagServeAddress string
	flagServeHostKey string
	flagServeIdle    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote preview",
	Long: `Serve the pattern workbench over SSH. Each connecting session
gets its own prefab browser and previewer.

Examples:
  barrage serve
  barrage serve --ssh :2222
  barrage serve --host-key ./host_key`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddress, "ssh", ":23235", "SSH listen address")
	serveCmd.Flags().StringVar(&flagServeHostKey, "host-key", "", "Path to SSH host key (auto-generated if empty)")
	serveCmd.Flags().DurationVar(&flagServeIdle, "idle-timeout", 30*time.Minute, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagServeAddress,
		HostKeyPath: flagServeHostKey,
		DBPath:      flagDBPath,
		ConfigPath:  flagConfig,
		IdleTimeout: flagServeIdle,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
