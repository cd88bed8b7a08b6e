package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"zervitravel/internal/store"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "Show a collection's records",
	Long: `Fetches a collection and prints its records, newest first.

On first run against an empty service the collection is seeded with its
default dataset. When the service is unreachable the cached snapshot is
shown and marked as possibly stale.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := app.Collection(args[0])
		if err != nil {
			return err
		}

		if err := col.Bootstrap(cmd.Context()); err != nil {
			color.Red("Seeding failed, showing built-in data: %v", err)
		}
		warnDegraded(col.Info())

		data, err := col.ExportJSON()
		if err != nil {
			return err
		}

		if listJSON {
			fmt.Println(string(data))
			return nil
		}
		return printTable(data)
	},
}

func printTable(data []byte) error {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No records")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tVERSION\tUPDATED")
	for _, rec := range records {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\n",
			rec["id"], title(rec), rec["version"], rec["updated_at"])
	}
	return w.Flush()
}

// title picks the human-facing field; collections name it differently.
func title(rec map[string]any) any {
	if v, ok := rec["name"]; ok && v != "" {
		return v
	}
	if v, ok := rec["title"]; ok && v != "" {
		return v
	}
	return ""
}

func warnDegraded(info store.Info) {
	if info.Degraded {
		color.Yellow("Service unreachable; showing local data, it may be stale.")
	}
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print raw JSON")
	rootCmd.AddCommand(listCmd)
}
