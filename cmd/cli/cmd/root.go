// Package cmd provides the CLI commands for policy-lookup.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"policy-lookup/core/dataset"
	"policy-lookup/core/engine"
	"policy-lookup/core/ordering"
	"policy-lookup/core/output"
	"policy-lookup/internal/config"
	"policy-lookup/internal/logging"
)

var (
	cfgFile      string
	verbose      bool
	dataSource   string
	ordersFile   string
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "policy-lookup",
	Short: "Look up bundle policy amounts",
	Long: `policy-lookup resolves a bundle selection (category, internet product,
optional TV product, one-stop and extra device flags) against the policy
table and prints the policy breakdown.

Examples:
  policy-lookup categories
  policy-lookup options internet --category 홈결합
  policy-lookup lookup --category 홈결합 --internet 베이직 --tv 라이트/베이직
  policy-lookup validate --data https://example.com/policy.json`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.policy-lookup.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&dataSource, "data", "d", "", "policy payload file or URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&ordersFile, "orders", "", "HCL order catalog (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		logging.Error("failed to load config", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Warn("failed to initialize logging, using defaults", zap.Error(err))
	}
	if verbose {
		logging.SetLevel(zapcore.DebugLevel)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "policy-lookup version 0.1.0")
	},
}

// resolvedFormat picks the flag, then the config default
func resolvedFormat() (output.Format, error) {
	f := outputFormat
	if f == "" {
		f = config.Get().Output.DefaultFormat
	}
	return output.ParseFormat(f)
}

// loadCatalog reads the HCL order catalog if one is configured
func loadCatalog() (*ordering.Catalog, error) {
	path := ordersFile
	if path == "" {
		path = config.Get().Ordering.File
	}
	if path == "" {
		return ordering.Default(), nil
	}
	logging.Debug("loading order catalog", zap.String("path", path))
	return ordering.LoadHCL(path)
}

// openEngine loads the dataset once and wires the engine
func openEngine(ctx context.Context) (*engine.Engine, error) {
	cfg := config.Get()

	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	location := dataSource
	if location == "" {
		location = cfg.Data.Source
	}

	if timeout := cfg.Data.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return engine.Open(ctx, dataset.NewSource(location), engine.Options{
		Catalog: catalog,
		Formatter: &output.AmountFormatter{
			Unit:        cfg.Output.Unit,
			Placeholder: cfg.Output.Placeholder,
		},
		Logger: logging.Named("engine"),
	})
}
