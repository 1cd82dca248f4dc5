package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swtd/internal/providers"
	"swtd/internal/structures"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored watch-time data",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: configPath, DebugMode: debugMode})
	if err != nil {
		return err
	}

	if !clearYes {
		fmt.Printf("Delete all watch-time data in %s? [y/N] ", conf.Persistence.FilePath)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := os.Remove(conf.Persistence.FilePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	fmt.Println("All watch-time data deleted")
	return nil
}
