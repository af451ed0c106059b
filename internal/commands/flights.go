package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/saikamaik/airline-sub000/pkg/model"
	"github.com/saikamaik/airline-sub000/pkg/output"
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Manage flights",
}

var (
	flightPage      int
	flightSize      int
	flightDeparture string
	flightArrival   string
)

func flightRows(flights []model.Flight) [][]string {
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []string{
			strconv.FormatInt(f.FlightID, 10),
			f.FlightNo,
			f.DepartureAirportCode,
			f.ArrivalAirportCode,
			f.ScheduledDeparture.Format("2006-01-02 15:04"),
			f.ScheduledArrival.Format("2006-01-02 15:04"),
			f.Status,
		})
	}
	return rows
}

var flightsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List flights",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()

		var page model.Page[model.Flight]
		if flightDeparture != "" || flightArrival != "" {
			if flightDeparture == "" || flightArrival == "" {
				return fmt.Errorf("--departure and --arrival must be given together")
			}
			page, err = client.Flights.SearchByAirports(context.Background(), flightDeparture, flightArrival, flightPage)
		} else {
			page, err = client.Flights.List(context.Background(), flightPage, flightSize)
		}
		if err != nil {
			return fmt.Errorf("failed to list flights: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}

		if err := formatter.Table(
			[]string{"ID", "FLIGHT", "FROM", "TO", "DEPARTURE", "ARRIVAL", "STATUS"},
			flightRows(page.Content),
		); err != nil {
			return err
		}
		formatter.Line("Page %d/%d (%d flights total)", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var (
	flightNo           string
	flightDepCode      string
	flightArrCode      string
	flightDepTime      string
	flightArrTime      string
	flightStatus       string
	flightAircraftCode string
)

func flightFromFlags() (model.Flight, error) {
	if flightNo == "" {
		return model.Flight{}, fmt.Errorf("--flight-no is required")
	}
	if flightDepCode == "" || flightArrCode == "" {
		return model.Flight{}, fmt.Errorf("--from and --to are required")
	}

	dep, err := time.Parse(time.RFC3339, flightDepTime)
	if err != nil {
		return model.Flight{}, fmt.Errorf("invalid --departs value (want RFC3339): %w", err)
	}
	arr, err := time.Parse(time.RFC3339, flightArrTime)
	if err != nil {
		return model.Flight{}, fmt.Errorf("invalid --arrives value (want RFC3339): %w", err)
	}
	if !arr.After(dep) {
		return model.Flight{}, fmt.Errorf("arrival must be after departure")
	}

	return model.Flight{
		FlightNo:             flightNo,
		ScheduledDeparture:   dep,
		ScheduledArrival:     arr,
		DepartureAirportCode: flightDepCode,
		ArrivalAirportCode:   flightArrCode,
		Status:               flightStatus,
		AircraftCode:         flightAircraftCode,
	}, nil
}

var flightsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a flight",
	RunE: func(cmd *cobra.Command, args []string) error {
		flight, err := flightFromFlags()
		if err != nil {
			return err
		}

		client, _ := newClient()
		if err := client.Flights.Create(context.Background(), flight); err != nil {
			return fmt.Errorf("failed to create flight: %w", err)
		}

		fmt.Printf("Created flight %s\n", flight.FlightNo)
		return nil
	},
}

var flightsUpdateCmd = &cobra.Command{
	Use:   "update <flight-id>",
	Short: "Update a flight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid flight ID %q", args[0])
		}

		flight, err := flightFromFlags()
		if err != nil {
			return err
		}

		client, _ := newClient()
		if err := client.Flights.Update(context.Background(), id, flight); err != nil {
			return fmt.Errorf("failed to update flight: %w", err)
		}

		fmt.Printf("Updated flight %d\n", id)
		return nil
	},
}

func init() {
	flightsListCmd.Flags().IntVar(&flightPage, "page", 0, "page number (0-based)")
	flightsListCmd.Flags().IntVar(&flightSize, "size", 100, "page size")
	flightsListCmd.Flags().StringVar(&flightDeparture, "departure", "", "departure airport code")
	flightsListCmd.Flags().StringVar(&flightArrival, "arrival", "", "arrival airport code")
	output.AddFormatFlag(flightsListCmd)

	for _, c := range []*cobra.Command{flightsCreateCmd, flightsUpdateCmd} {
		c.Flags().StringVar(&flightNo, "flight-no", "", "flight number")
		c.Flags().StringVar(&flightDepCode, "from", "", "departure airport code")
		c.Flags().StringVar(&flightArrCode, "to", "", "arrival airport code")
		c.Flags().StringVar(&flightDepTime, "departs", "", "scheduled departure (RFC3339)")
		c.Flags().StringVar(&flightArrTime, "arrives", "", "scheduled arrival (RFC3339)")
		c.Flags().StringVar(&flightStatus, "status", "Scheduled", "flight status")
		c.Flags().StringVar(&flightAircraftCode, "aircraft", "", "aircraft code")
	}

	flightsCmd.AddCommand(flightsListCmd)
	flightsCmd.AddCommand(flightsCreateCmd)
	flightsCmd.AddCommand(flightsUpdateCmd)
	rootCmd.AddCommand(flightsCmd)
}
