package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/reviewkit/klavex/internal/client"
	"github.com/reviewkit/klavex/pkg/output"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List account metrics",
	Long:  "List every metric defined on the Klaviyo account, including the Submitted review metric used for exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		c := client.New(cfg.BaseURL, cfg.APIKey, cfg.Revision)
		metrics, err := c.ListMetrics(context.Background())
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "json" {
			return output.JSON(metrics)
		}

		table := output.NewTable([]string{"ID", "NAME", "INTEGRATION", "CREATED"})
		for _, m := range metrics {
			table.AddRow([]string{m.ID, m.Name, m.Integration, m.Created})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
