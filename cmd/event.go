package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/reviewkit/klavex/internal/client"
	"github.com/reviewkit/klavex/pkg/output"
)

var eventCmd = &cobra.Command{
	Use:   "event <id>",
	Short: "Fetch a single event",
	Long:  "Fetch one event by ID with its full event properties and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		c := client.New(cfg.BaseURL, cfg.APIKey, cfg.Revision)
		ev, err := c.GetEvent(context.Background(), args[0])
		if err != nil {
			return err
		}

		return output.JSON(ev)
	},
}

func init() {
	rootCmd.AddCommand(eventCmd)
}
