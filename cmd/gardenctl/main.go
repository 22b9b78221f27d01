// Command gardenctl is the admin CLI: database migrations, plant pack
// validation and offline sprite rendering.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/GardenBot_Go/internal/config"
)

var (
	// Global flags
	verbose   bool
	assetsDir string
)

var rootCmd = &cobra.Command{
	Use:   "gardenctl",
	Short: "GardenBot admin tool",
	Long: `gardenctl manages a GardenBot deployment.

Database settings are read from the same DB_* environment variables (or .env)
as the API process.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&assetsDir, "assets", config.DefaultAssetsDir, "assets directory holding plants/, pots/ and artists.json")

	rootCmd.AddCommand(migrateCmd, validatePacksCmd, renderCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
