package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"review_collector/internal/config"
)

type cli struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	logger     *slog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{logger: setupLogger("info")}

	root := &cobra.Command{
		Use:           "collector",
		Short:         "Collect running shoe reviews from video, social and community sources",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				c.logger.Error("failed to load config", "error", err)
				return err
			}
			if c.logLevel != "" {
				cfg.LogLevel = c.logLevel
			}
			c.cfg = cfg
			c.logger = setupLogger(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "config.yaml", "path to config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		c.configCommand(),
		c.shoesCommand(),
		c.collectCommand(),
		c.collectAllCommand(),
		c.sourcesCommand(),
	)
	return root
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
