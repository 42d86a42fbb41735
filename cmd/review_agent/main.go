// Package main provides the review_agent CLI: a REST API server and a
// one-shot generator for product review articles.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/review-writer/internal/config"
)

var (
	configPath string
	verbose    bool

	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "review_agent",
	Short: "Product review article generator",
	Long: `Review Agent turns a product page URL plus editorial parameters into a
publish-ready review article with affiliate links, spelling corrections and
optional illustrations.

Configuration is read from --config (JSON or YAML), then overridden by
environment variables such as GEMINI_API_KEY and OPENAI_API_KEY.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and verbose output")
}

func setup(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	appConfig = cfg

	logger, err = newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	_ = logger.Sync()
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}

// loadAppConfig layers defaults, the optional config file and the environment.
func loadAppConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
