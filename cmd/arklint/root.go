package main

import (
	"github.com/spf13/cobra"

	"github.com/ets-tools/arklint/pkg/config"
)

var (
	cfgFile    string
	formatFlag string
	outputFile string
	noColor    bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "arklint",
	Short: "Static analysis for ArkTS and TypeScript sources",
	Long: `Arklint scans ArkTS (.ets) and TypeScript (.ts) sources for code
smells and code clones: long methods, oversized switches, feature envy,
malformed ForEach calls, duplicated methods and duplicated token
fragments.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// loadConfig loads the configured file, or searches standard locations.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}
