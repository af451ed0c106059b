package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/saikamaik/airline-sub000/pkg/api"
	"github.com/saikamaik/airline-sub000/pkg/model"
	"github.com/saikamaik/airline-sub000/pkg/output"
)

var toursCmd = &cobra.Command{
	Use:   "tours",
	Short: "Manage the tour catalogue",
}

var (
	tourDestination string
	tourMinPrice    float64
	tourMaxPrice    float64
	tourPage        int
	tourSize        int
	tourPublic      bool
)

var toursListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tours",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		filter := api.ToursFilter{
			Destination: tourDestination,
			Page:        tourPage,
			Size:        tourSize,
		}
		if cmd.Flags().Changed("min-price") {
			filter.MinPrice = &tourMinPrice
		}
		if cmd.Flags().Changed("max-price") {
			filter.MaxPrice = &tourMaxPrice
		}

		client, _ := newClient()
		var page model.Page[model.Tour]
		if tourPublic {
			page, err = client.Tours.ListPublic(context.Background(), filter)
		} else {
			page, err = client.Tours.List(context.Background(), filter)
		}
		if err != nil {
			return fmt.Errorf("failed to list tours: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}

		rows := make([][]string, 0, len(page.Content))
		for _, t := range page.Content {
			rows = append(rows, []string{
				strconv.FormatInt(t.ID, 10),
				t.Name,
				t.DestinationCity,
				fmt.Sprintf("%.2f", t.Price),
				strconv.Itoa(t.DurationDays),
				strconv.FormatBool(t.Active),
			})
		}
		if err := formatter.Table([]string{"ID", "NAME", "DESTINATION", "PRICE", "DAYS", "ACTIVE"}, rows); err != nil {
			return err
		}
		formatter.Line("Page %d/%d (%d tours total)", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var toursGetCmd = &cobra.Command{
	Use:   "get <tour-id>",
	Short: "Show one tour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tour ID %q", args[0])
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		tour, err := client.Tours.Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to get tour: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(tour)
		}

		formatter.Line("ID:          %d", tour.ID)
		formatter.Line("Name:        %s", tour.Name)
		formatter.Line("Destination: %s", tour.DestinationCity)
		formatter.Line("Price:       %.2f", tour.Price)
		formatter.Line("Duration:    %d days", tour.DurationDays)
		formatter.Line("Active:      %t", tour.Active)
		if tour.Description != "" {
			formatter.Line("Description: %s", tour.Description)
		}
		if len(tour.FlightIDs) > 0 {
			formatter.Line("Flights:     %v", tour.FlightIDs)
		}
		return nil
	},
}

var (
	tourName        string
	tourDescription string
	tourPrice       float64
	tourDuration    int
	tourImageURL    string
	tourCity        string
	tourActive      bool
	tourFlightIDs   []int64
)

func tourFromFlags() (model.Tour, error) {
	if tourName == "" {
		return model.Tour{}, fmt.Errorf("--name is required")
	}
	if tourCity == "" {
		return model.Tour{}, fmt.Errorf("--destination is required")
	}
	if tourPrice < 0 {
		return model.Tour{}, fmt.Errorf("--price must not be negative")
	}
	return model.Tour{
		Name:            tourName,
		Description:     tourDescription,
		Price:           tourPrice,
		DurationDays:    tourDuration,
		ImageURL:        tourImageURL,
		DestinationCity: tourCity,
		Active:          tourActive,
		FlightIDs:       tourFlightIDs,
	}, nil
}

var toursCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tour",
	RunE: func(cmd *cobra.Command, args []string) error {
		tour, err := tourFromFlags()
		if err != nil {
			return err
		}

		client, _ := newClient()
		created, err := client.Tours.Create(context.Background(), tour)
		if err != nil {
			return fmt.Errorf("failed to create tour: %w", err)
		}

		fmt.Printf("Created tour %d: %s\n", created.ID, created.Name)
		return nil
	},
}

var toursUpdateCmd = &cobra.Command{
	Use:   "update <tour-id>",
	Short: "Update a tour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tour ID %q", args[0])
		}

		tour, err := tourFromFlags()
		if err != nil {
			return err
		}

		client, _ := newClient()
		updated, err := client.Tours.Update(context.Background(), id, tour)
		if err != nil {
			return fmt.Errorf("failed to update tour: %w", err)
		}

		fmt.Printf("Updated tour %d: %s\n", updated.ID, updated.Name)
		return nil
	},
}

var toursDeleteCmd = &cobra.Command{
	Use:   "delete <tour-id>",
	Short: "Delete a tour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tour ID %q", args[0])
		}

		client, _ := newClient()
		if err := client.Tours.Delete(context.Background(), id); err != nil {
			return fmt.Errorf("failed to delete tour: %w", err)
		}

		fmt.Printf("Deleted tour %d\n", id)
		return nil
	},
}

var toursFlightsCmd = &cobra.Command{
	Use:   "flights <tour-id>",
	Short: "List the flights attached to a tour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tour ID %q", args[0])
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		flights, err := client.Tours.FlightsFor(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to list tour flights: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(flights)
		}

		rows := make([][]string, 0, len(flights))
		for _, f := range flights {
			rows = append(rows, []string{
				f.FlightNo,
				f.DepartureAirportCode,
				f.ArrivalAirportCode,
				f.ScheduledDeparture.Format("2006-01-02 15:04"),
				f.Status,
			})
		}
		return formatter.Table([]string{"FLIGHT", "FROM", "TO", "DEPARTURE", "STATUS"}, rows)
	},
}

func init() {
	toursListCmd.Flags().StringVar(&tourDestination, "destination", "", "filter by destination city")
	toursListCmd.Flags().Float64Var(&tourMinPrice, "min-price", 0, "minimum price")
	toursListCmd.Flags().Float64Var(&tourMaxPrice, "max-price", 0, "maximum price")
	toursListCmd.Flags().IntVar(&tourPage, "page", 0, "page number (0-based)")
	toursListCmd.Flags().IntVar(&tourSize, "size", 20, "page size")
	toursListCmd.Flags().BoolVar(&tourPublic, "public", false, "use the public catalogue (active tours only)")
	output.AddFormatFlag(toursListCmd)
	output.AddFormatFlag(toursGetCmd)
	output.AddFormatFlag(toursFlightsCmd)

	for _, c := range []*cobra.Command{toursCreateCmd, toursUpdateCmd} {
		c.Flags().StringVar(&tourName, "name", "", "tour name")
		c.Flags().StringVar(&tourDescription, "description", "", "tour description")
		c.Flags().Float64Var(&tourPrice, "price", 0, "tour price")
		c.Flags().IntVar(&tourDuration, "duration", 0, "duration in days")
		c.Flags().StringVar(&tourImageURL, "image-url", "", "cover image URL")
		c.Flags().StringVar(&tourCity, "destination", "", "destination city")
		c.Flags().BoolVar(&tourActive, "active", true, "tour is bookable")
		c.Flags().Int64SliceVar(&tourFlightIDs, "flight-ids", nil, "attached flight IDs")
	}

	toursCmd.AddCommand(toursListCmd)
	toursCmd.AddCommand(toursGetCmd)
	toursCmd.AddCommand(toursCreateCmd)
	toursCmd.AddCommand(toursUpdateCmd)
	toursCmd.AddCommand(toursDeleteCmd)
	toursCmd.AddCommand(toursFlightsCmd)
	rootCmd.AddCommand(toursCmd)
}
