package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saikamaik/airline-sub000/pkg/output"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "ML analytics: forecasts, clusters, model quality",
}

var analyticsDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the analytics dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		d, err := client.Analytics.Dashboard(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get analytics dashboard: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(d)
		}

		formatter.Line("Requests:       %d", d.TotalRequests)
		formatter.Line("Revenue:        %.2f", d.TotalRevenue)
		formatter.Line("Avg per req:    %.2f", d.AverageRequestValue)
		if d.NextMonthPredictedRevenue > 0 {
			formatter.Line("Next month est: %.2f", d.NextMonthPredictedRevenue)
		}
		if len(d.TopDestinations) > 0 {
			formatter.Line("")
			rows := make([][]string, 0, len(d.TopDestinations))
			for _, t := range d.TopDestinations {
				rows = append(rows, []string{t.Destination, strconv.FormatInt(t.Count, 10)})
			}
			if err := formatter.Table([]string{"DESTINATION", "REQUESTS"}, rows); err != nil {
				return err
			}
		}
		return nil
	},
}

var forecastDestination string

var analyticsForecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show the demand forecast",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		f, err := client.Analytics.Forecast(context.Background(), forecastDestination)
		if err != nil {
			return fmt.Errorf("failed to get forecast: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(f)
		}

		rows := make([][]string, 0, len(f.Forecast))
		for _, p := range f.Forecast {
			rows = append(rows, []string{
				p.Date,
				fmt.Sprintf("%.1f", p.PredictedDemand),
				fmt.Sprintf("%.0f%%", p.Confidence*100),
			})
		}
		if err := formatter.Table([]string{"DATE", "DEMAND", "CONFIDENCE"}, rows); err != nil {
			return err
		}
		for _, r := range f.Recommendations {
			formatter.Line("* %s", r)
		}
		return nil
	},
}

var analyticsForecastTableCmd = &cobra.Command{
	Use:   "forecast-table",
	Short: "Show the per-destination forecast table",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		table, err := client.Analytics.ForecastTable(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get forecast table: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(table)
		}

		rows := make([][]string, 0, len(table))
		for _, r := range table {
			rows = append(rows, []string{
				r.Destination,
				fmt.Sprintf("%.1f", r.CurrentDemandPerWeek),
				fmt.Sprintf("%.1f", r.PredictedDemandPerWeek),
				fmt.Sprintf("%+.1f%%", r.ChangePercent),
				r.Trend,
			})
		}
		return formatter.Table([]string{"DESTINATION", "CURRENT/WK", "PREDICTED/WK", "CHANGE", "TREND"}, rows)
	},
}

var clusterCount int

var analyticsClustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Show tour clusters",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		clusters, err := client.Analytics.Clusters(context.Background(), clusterCount)
		if err != nil {
			return fmt.Errorf("failed to get clusters: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(clusters)
		}

		for _, c := range clusters {
			formatter.Line("Cluster %d (%s): %s", c.ClusterID, c.ClusterType, c.Description)
			formatter.Line("  avg price %.2f, avg duration %.1f days, %d tours",
				c.AvgPrice, c.AvgDuration, len(c.Tours))
		}
		return nil
	},
}

var analyticsModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show forecast model quality per destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		metrics, err := client.Analytics.ModelMetrics(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get model metrics: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(metrics)
		}

		rows := make([][]string, 0, len(metrics))
		for _, m := range metrics {
			rows = append(rows, []string{
				m.Destination,
				fmt.Sprintf("%.3f", m.EnsembleR2),
				fmt.Sprintf("%.2f", m.EnsembleMAE),
				fmt.Sprintf("%.2f", m.EnsembleRMSE),
			})
		}
		return formatter.Table([]string{"DESTINATION", "R2", "MAE", "RMSE"}, rows)
	},
}

var analyticsRawPeriod string

var analyticsRawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Dump the full analytics aggregate as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		data, err := client.Analytics.Full(context.Background(), analyticsRawPeriod)
		if err != nil {
			return fmt.Errorf("failed to get analytics: %w", err)
		}
		os.Stdout.Write(data)
		fmt.Println()
		return nil
	},
}

var analyticsHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the ML service liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		h, err := client.Analytics.Health(context.Background())
		if err != nil {
			return fmt.Errorf("failed to check analytics health: %w", err)
		}

		fmt.Printf("ML service: %s (%s)\n", h.MLService, h.Status)
		return nil
	},
}

func init() {
	output.AddFormatFlag(analyticsDashboardCmd)
	output.AddFormatFlag(analyticsForecastCmd)
	output.AddFormatFlag(analyticsForecastTableCmd)
	output.AddFormatFlag(analyticsClustersCmd)
	output.AddFormatFlag(analyticsModelsCmd)

	analyticsForecastCmd.Flags().StringVar(&forecastDestination, "destination", "", "forecast one destination (default agency-wide)")
	analyticsClustersCmd.Flags().IntVar(&clusterCount, "clusters", 0, "number of clusters (default server-side)")
	analyticsRawCmd.Flags().StringVar(&analyticsRawPeriod, "period", "", "aggregation period (week|month|year)")

	analyticsCmd.AddCommand(analyticsDashboardCmd)
	analyticsCmd.AddCommand(analyticsForecastCmd)
	analyticsCmd.AddCommand(analyticsForecastTableCmd)
	analyticsCmd.AddCommand(analyticsClustersCmd)
	analyticsCmd.AddCommand(analyticsModelsCmd)
	analyticsCmd.AddCommand(analyticsRawCmd)
	analyticsCmd.AddCommand(analyticsHealthCmd)
	rootCmd.AddCommand(analyticsCmd)
}
