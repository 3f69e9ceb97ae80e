package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yt-sentiment-pipeline/internal/config"
	"yt-sentiment-pipeline/internal/logger"
)

var (
	// cfgFile holds the path to the YAML configuration file
	cfgFile string

	// debug switches the logger to development mode at debug level
	debug bool

	rootCmd = &cobra.Command{
		Use:           "pipeline",
		Short:         "YouTube comment sentiment pipeline",
		Long:          `Fetch the public comments of a YouTube video, score their sentiment and render a PDF report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SENTIMENT_CONFIG, else built-in defaults)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(runCommand())
	rootCmd.AddCommand(dashboardCommand())
	rootCmd.AddCommand(serveCommand())
}

// setup loads the configuration and builds the logger shared by every command
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logCfg := logger.Config{Level: cfg.Logging.Level, Development: cfg.Logging.Development}
	if debug {
		logCfg = logger.Config{Level: "debug", Development: true}
	}
	log, err := logger.New(logCfg)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}
