package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swtd/internal/persistence"
	"swtd/internal/providers"
	"swtd/internal/structures"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the snapshot file as plain JSON",
	Long:  `Read the daemon's snapshot file and write it as uncompressed JSON, the same shape the /export endpoint serves.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: configPath, DebugMode: debugMode})
	if err != nil {
		return err
	}

	compressor, err := persistence.NewZstdCompressor()
	if err != nil {
		return err
	}
	defer compressor.Close()

	snap, err := persistence.ReadSnapshotFile(conf.Persistence.FilePath, compressor)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if snap == nil {
		return fmt.Errorf("no snapshot file at %s", conf.Persistence.FilePath)
	}

	data, err := snap.Encode()
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(exportOutput, data, 0o644)
}
