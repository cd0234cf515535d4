package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewkit/klavex/internal/client"
	"github.com/reviewkit/klavex/internal/config"
	"github.com/reviewkit/klavex/internal/export"
	"github.com/reviewkit/klavex/pkg/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export submitted review events to CSV",
	Long:  "Fetch all Submitted review events in a date range and write them to a CSV file",
	Example: `  # Export one quarter of reviews
  klavex export --start-date 2024-01-01 --end-date 2024-03-31

  # Custom output path, explicit key
  klavex export --start-date 2024-01-01 --end-date 2024-01-31 \
    --api-key pk_... --output january_reviews.csv

  # Full event properties (one extra request per event, slower)
  klavex export --start-date 2024-01-01 --end-date 2024-01-31 --detailed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}

		startDate, _ := cmd.Flags().GetString("start-date")
		endDate, _ := cmd.Flags().GetString("end-date")
		dr, err := client.ParseDateRange(startDate, endDate)
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("output")
		detailed, _ := cmd.Flags().GetBool("detailed")
		chunkMonths, _ := cmd.Flags().GetInt("chunk-months")

		pipeline := &export.Pipeline{
			Client:      client.New(cfg.BaseURL, cfg.APIKey, cfg.Revision),
			Range:       dr,
			Output:      outPath,
			ChunkMonths: chunkMonths,
			Detailed:    detailed,
			Progress:    output.Info,
		}

		result, err := pipeline.Run(context.Background())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if result.Rows == 0 {
			output.Warn("No review events found between %s and %s", startDate, endDate)
		}
		output.Success("Exported %d events to %s", result.Rows, result.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("start-date", "", "Start date, inclusive (YYYY-MM-DD)")
	exportCmd.Flags().String("end-date", "", "End date, inclusive (YYYY-MM-DD)")
	exportCmd.Flags().String("output", config.DefaultOutput, "Output CSV path")
	exportCmd.Flags().Bool("detailed", false, "Fetch full properties per event (slower)")
	exportCmd.Flags().Int("chunk-months", 1, "Months per fetch chunk")
	exportCmd.MarkFlagRequired("start-date")
	exportCmd.MarkFlagRequired("end-date")
}
