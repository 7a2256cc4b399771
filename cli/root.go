// Package cli implements the map-stitcher command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MaaXYZ/MaaEnd/agent/map-stitcher/config"
)

var version = "dev"

var (
	configPath string
	logLevel   string
	logFile    string
	verbose    bool

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "map-stitcher",
	Short: "Stitch minimap screenshots into a world map",
	Long: `map-stitcher reads game screenshots, locates the minimap overlay and the
player cursor in each one, works out which map tile the player was standing
on and pastes every screenshot into its cell of a single composite map.

Configuration is read from ~/.map-stitcher/config.yaml (or --config) and
can be overridden with MAPSTITCH_* environment variables and flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if verbose {
			level = "debug"
		}
		closer, err := initLogger(cmd.ErrOrStderr(), level, logFile)
		if err != nil {
			return err
		}
		logCloser = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.map-stitcher/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.GetEnvOrDefault("MAPSTITCH_LOG_LEVEL", "info"), "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context so a batch stops between two images.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Command failed")
	}
	closeLogger()
	return err
}

// newLoader returns the loader for --config, or the default location.
func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

// loadConfig reads the config file and applies environment overrides.
// Command flags are applied by the caller and validated afterwards.
func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to initialise config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", loader.ConfigPath()).
		Bool("exists", loader.Exists()).
		Msg("Config loaded")
	return cfg, nil
}

func closeLogger() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}
