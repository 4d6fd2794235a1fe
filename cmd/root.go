package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jetup/pkg/clock"
	"jetup/pkg/log"
	"jetup/pkg/system"
)

var (
	cfgFile     string
	logLevel    string
	logDir      string
	jsonOutput  bool
	parsedLevel slog.Level
	logger      log.Logger
	cmdRunner   system.CommandRunner = &system.LiveCommandRunner{}
	clk         clock.Clock          = clock.Real{}
	rootCmd                          = &cobra.Command{
		Use:   "jetup",
		Short: "jetup provisions a freshly flashed Jetson workstation",
		Long: `A resilient provisioning tool for a single developer workstation after
flashing: system packages, a browser, an editor repository, Python wheels,
swap space, and a Conda distribution, driven by a declarative manifest.
Required steps retry under package-database lock contention; optional
helper scripts never abort the run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			parsedLevel = level
			writer := cmd.ErrOrStderr()
			logger = log.NewSlogLogger(level, writer)
			ctx := context.WithValue(cmd.Context(), "logger", logger)
			cmd.SetContext(ctx)
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "./jetup.yaml", "manifest file (default is ./jetup.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "/var/log/jetup", "Directory for per-run log files")
}
