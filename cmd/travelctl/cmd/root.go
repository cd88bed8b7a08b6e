// Package cmd hosts the travelctl command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"zervitravel/internal/app/client"
	"zervitravel/internal/config"
	"zervitravel/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "travelctl",
	Short: "Travelctl keeps your travel collections in sync",
	Long: `Travelctl manages synchronized travel collections: destinations,
itinerary items, suppliers, business entities and trips.

Records live in the remote table service; every device keeps a local
snapshot so the data stays readable when the service is unreachable.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	if serverURL != "" {
		cfg.Client.ServerAddress = serverURL
	}
	if dataDir != "" {
		cfg.Client.DataDir = dataDir
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "table service base URL")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for the local snapshot cache")
}
