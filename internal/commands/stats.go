package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saikamaik/airline-sub000/pkg/api"
	"github.com/saikamaik/airline-sub000/pkg/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Agency statistics",
}

var (
	statsStartDate string
	statsEndDate   string
)

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the statistics aggregate",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		stats, err := client.Statistics.Get(context.Background(), api.SalesRange{
			StartDate: statsStartDate,
			EndDate:   statsEndDate,
		})
		if err != nil {
			return fmt.Errorf("failed to get statistics: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(stats)
		}

		formatter.Line("Tours:    %d total, %d active", stats.TotalTours, stats.ActiveTours)
		formatter.Line("Requests: %d total, %d new", stats.TotalRequests, stats.NewRequests)
		formatter.Line("Prices:   avg %.2f, min %.2f, max %.2f", stats.AvgTourPrice, stats.MinTourPrice, stats.MaxTourPrice)

		if len(stats.TopDestinations) > 0 {
			formatter.Line("")
			formatter.Line("Top destinations:")
			rows := make([][]string, 0, len(stats.TopDestinations))
			for _, d := range stats.TopDestinations {
				rows = append(rows, []string{
					d.Destination,
					strconv.FormatInt(d.TourCount, 10),
					strconv.FormatInt(d.RequestCount, 10),
				})
			}
			if err := formatter.Table([]string{"DESTINATION", "TOURS", "REQUESTS"}, rows); err != nil {
				return err
			}
		}

		if len(stats.RequestsByStatus) > 0 {
			formatter.Line("")
			formatter.Line("Requests by status:")
			for _, status := range []string{"NEW", "IN_PROGRESS", "COMPLETED", "CANCELLED"} {
				if count, ok := stats.RequestsByStatus[status]; ok {
					formatter.Line("  %-12s %d", status, count)
				}
			}
		}
		return nil
	},
}

var statsExportFile string

var statsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the statistics report as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		data, err := client.Statistics.ExportCSV(context.Background(), api.SalesRange{
			StartDate: statsStartDate,
			EndDate:   statsEndDate,
		})
		if err != nil {
			return fmt.Errorf("failed to export statistics: %w", err)
		}

		if statsExportFile == "" || statsExportFile == "-" {
			os.Stdout.Write(data)
			return nil
		}

		if err := os.WriteFile(statsExportFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", statsExportFile, err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), statsExportFile)
		return nil
	},
}

func init() {
	statsCmd.PersistentFlags().StringVar(&statsStartDate, "start-date", "", "range start (YYYY-MM-DD)")
	statsCmd.PersistentFlags().StringVar(&statsEndDate, "end-date", "", "range end (YYYY-MM-DD)")
	output.AddFormatFlag(statsShowCmd)

	statsExportCmd.Flags().StringVarP(&statsExportFile, "file", "f", "", "output file (default stdout)")

	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsExportCmd)
	rootCmd.AddCommand(statsCmd)
}
