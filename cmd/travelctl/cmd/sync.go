package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"zervitravel/internal/domain/travel"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch every collection from the service",
	Long: `Runs first-run reconciliation and a fresh fetch for every collection.
Collections the service cannot serve fall back to local data and are
reported as degraded.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.BootstrapAll(cmd.Context()); err != nil {
			color.Red("Some collections could not be reconciled: %v", err)
		}

		for _, name := range travel.CollectionNames() {
			col, err := app.Collection(name)
			if err != nil {
				return err
			}
			if err := col.Refetch(cmd.Context()); err != nil {
				color.Red("%-16s fetch failed: %v", name, err)
				continue
			}
			info := col.Info()
			if info.Degraded {
				color.Yellow("%-16s %d records (local, possibly stale)", name, info.Count)
				continue
			}
			fmt.Printf("%-16s %d records\n", name, info.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
