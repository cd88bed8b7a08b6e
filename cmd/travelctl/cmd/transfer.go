package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"zervitravel/internal/store"
)

var resetYes bool

var importCmd = &cobra.Command{
	Use:   "import <collection> <file>",
	Short: "Replace a collection with a JSON file",
	Long: `Validates the payload, then clears the collection and seeds it with
the file's records, in file order.

If seeding stops partway the collection is left blocked; run
"travelctl sync" to reconcile before editing again.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := app.Collection(args[0])
		if err != nil {
			return err
		}
		payload, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		// Import targets the current remote state; fetch it first.
		if err := col.Fetch(cmd.Context()); err != nil {
			return fmt.Errorf("fetch %s: %w", args[0], err)
		}

		res, err := col.Import(cmd.Context(), payload)
		reportTransfer(args[0], res, err)
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <collection> [file]",
	Short: "Write a collection's records as JSON",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := app.Collection(args[0])
		if err != nil {
			return err
		}
		if err := col.Fetch(cmd.Context()); err != nil {
			return fmt.Errorf("fetch %s: %w", args[0], err)
		}
		warnDegraded(col.Info())

		data, err := col.ExportJSON()
		if err != nil {
			return err
		}

		if len(args) == 2 {
			return os.WriteFile(args[1], data, 0o644)
		}
		fmt.Println(string(data))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <collection>",
	Short: "Restore a collection to its built-in sample dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset discards every record in %q; re-run with --yes to confirm", args[0])
		}

		col, err := app.Collection(args[0])
		if err != nil {
			return err
		}
		if err := col.Fetch(cmd.Context()); err != nil {
			return fmt.Errorf("fetch %s: %w", args[0], err)
		}

		res, err := col.Reset(cmd.Context())
		reportTransfer(args[0], res, err)
		return err
	},
}

var saveDefaultCmd = &cobra.Command{
	Use:   "save-default <collection>...",
	Short: "Save collections' current records as the bootstrap baseline",
	Long: `Stores the named collections' current records locally as the dataset
future first-runs seed from, instead of the built-in samples. Never
touches the service.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range args {
			col, err := app.Collection(name)
			if err != nil {
				return err
			}
			if err := col.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
		}

		if err := app.SaveAsDefault(args...); err != nil {
			return err
		}
		fmt.Printf("Saved %d collection(s) as the default dataset\n", len(args))
		return nil
	},
}

func reportTransfer(name string, res store.Result, err error) {
	if err != nil {
		color.Red("%s stopped at %s: removed %d, inserted %d",
			name, res.Phase, res.Removed, res.Inserted)
		color.Red("The collection is blocked; run \"travelctl sync\" to reconcile.")
		return
	}
	fmt.Printf("%s: removed %d, inserted %d\n", name, res.Removed, res.Inserted)
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
	rootCmd.AddCommand(importCmd, exportCmd, resetCmd, saveDefaultCmd)
}
