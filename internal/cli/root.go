// Package cli implements the embedix command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/embedix"
)

// Config holds CLI defaults, optionally loaded from a YAML file.
type Config struct {
	CacheSize int `yaml:"cache_size"`
	Workers   int `yaml:"workers"`
}

var (
	flagPath   string
	flagConfig string

	cfg = Config{
		CacheSize: embedix.DefaultCacheSize,
	}
)

var rootCmd = &cobra.Command{
	Use:   "embedix",
	Short: "Persistent partitioned term-to-vector index",
	Long: `embedix manages persistent, partitioned indices of fixed-dimensionality
float32 vectors keyed by text terms, built once from a corpus of
"term weight weight ..." lines and read concurrently thereafter.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "index directory")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "YAML config file (cache_size, workers)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if flagConfig == "" {
		return nil
	}
	data, err := os.ReadFile(flagConfig)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = embedix.DefaultCacheSize
	}
	return nil
}

func openOptions(readOnly bool) []embedix.Option {
	opts := []embedix.Option{
		embedix.WithCacheSize(cfg.CacheSize),
	}
	if cfg.Workers > 0 {
		opts = append(opts, embedix.WithCompileWorkers(cfg.Workers))
	}
	if readOnly {
		opts = append(opts, embedix.WithReadOnly())
	}
	return opts
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
