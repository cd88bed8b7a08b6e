package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the table service is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := app.HealthCheck(cmd.Context()); err != nil {
			color.Red("Service unreachable: %v", err)
			return nil
		}
		fmt.Printf("Service at %s is healthy\n", cfg.Client.ServerAddress)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
