package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flywave/go-iontrap/internal/config"
)

var (
	scenePath string
	logLevel  string
	logFormat string

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "iontrap",
	Short: "Evaluate and plot ion trap potential fields",
	Long: `Evaluate closed-form ion trap potentials (Paul trap quadrupole,
linear trap, QCCD single trap) over a sampled grid, slice cross-sections
and render them.

Without --scene the Paul trap preset is evaluated on a 100^3 grid over
[-1, 1] on every axis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(logLevel, logFormat)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenePath, "scene", "s", "", "scene file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "text or json")
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

func loadScene() (*config.Scene, error) {
	if scenePath == "" {
		return config.Default()
	}
	return config.Load(scenePath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
