package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/canopy/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canopy",
	Short: "Canopy runs demo behavior trees",
	Long:  `Canopy ticks behavior trees built with the canopy library and renders their live status.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// appLogger builds the logger for a command invocation, honoring --quiet
// and --verbose.
func appLogger(cmd *cobra.Command) *slog.Logger {
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return logging.NewNop()
	}
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Silence log output")
}
