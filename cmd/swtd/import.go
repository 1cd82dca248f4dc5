package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swtd/internal/models"
	"swtd/internal/persistence"
	"swtd/internal/providers"
	"swtd/internal/structures"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a JSON export into the snapshot file",
	Long: `Validate a JSON export and merge it into the daemon's snapshot file,
key by key. Stop the daemon first; a running daemon overwrites the file on
its next save.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: configPath, DebugMode: debugMode})
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	imported, err := models.DecodeSnapshot(data)
	if err != nil {
		return fmt.Errorf("rejected import: %w", err)
	}

	compressor, err := persistence.NewZstdCompressor()
	if err != nil {
		return err
	}
	defer compressor.Close()

	store := models.NewBucketStore()
	existing, err := persistence.ReadSnapshotFile(conf.Persistence.FilePath, compressor)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	if existing != nil {
		store.Merge(existing)
	}
	store.Merge(imported)

	if err := persistence.WriteSnapshotFile(conf.Persistence.FilePath, store.Snapshot(), compressor); err != nil {
		return err
	}

	fmt.Printf("Imported %d buckets and %d channels into %s\n", len(imported.Buckets), len(imported.AllTime), conf.Persistence.FilePath)
	return nil
}
