package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reviewkit/klavex/internal/config"
	"github.com/reviewkit/klavex/pkg/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage klavex configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long:  "Write the resolved configuration to the config file so the API key does not need to be passed on every invocation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}

		path := cfgFile
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		output.Success("Wrote config to %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		if shown.APIKey != "" {
			shown.APIKey = redactKey(shown.APIKey)
		}
		return output.JSON(shown)
	},
}

// redactKey keeps just enough of the key to identify it.
func redactKey(key string) string {
	if len(key) <= 6 {
		return "******"
	}
	return key[:6] + "..."
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
