package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reviewkit/klavex/internal/config"
)

var (
	cfgFile    string
	apiKeyFlag string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "klavex",
	Short: "Klaviyo review export tool",
	Long: `klavex exports "Submitted review" events from the Klaviyo API.

It pages through the event feed for a date range, flattens each review's
nested fields (including dynamic "CQ:" custom-question columns) and writes
the result to a CSV file.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.klavex/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Klaviyo private API key (default: $"+config.EnvAPIKey+")")
	rootCmd.PersistentFlags().String("format", "table", "output format: table, json")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load config: %v\n", err)
		cfg = config.Default()
	}
	if apiKeyFlag != "" {
		cfg.APIKey = apiKeyFlag
	}
}
