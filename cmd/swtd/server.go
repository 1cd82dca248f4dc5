package main

import (
	"github.com/spf13/cobra"

	"swtd/internal/di"
	"swtd/internal/structures"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the watch-time daemon",
	Long:  `Start the daemon: restore the last snapshot, begin watching the configured probe and serve the HTTP API until interrupted.`,
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: configPath,
		DebugMode:  debugMode,
	})
	return err
}
