package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
	debugMode  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swtd",
	Short: "swtd - muted stream watch-time tracking daemon",
	Long: `swtd tracks how much time is spent watching muted video streams,
aggregated per channel across day, week, month and all-time windows. It
accepts one-second ticks from channel probes, prunes stale buckets daily and
serves the aggregated totals over a local HTTP API.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to server command when no subcommand is provided
		return runServer(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/swtd/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "d", false, "Mirror logs to the console")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
