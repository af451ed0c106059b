package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saikamaik/airline-sub000/pkg/api"
	"github.com/saikamaik/airline-sub000/pkg/model"
	"github.com/saikamaik/airline-sub000/pkg/output"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Manage client booking requests",
}

var (
	reqStatus    string
	reqPriority  string
	reqStartDate string
	reqEndDate   string
	reqPage      int
	reqSize      int
)

func requestRows(requests []model.ClientRequest) [][]string {
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		employee := "-"
		if r.EmployeeName != "" {
			employee = r.EmployeeName
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.TourName,
			r.UserName,
			r.Status,
			r.Priority,
			employee,
		})
	}
	return rows
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reqStatus != "" && !model.ValidStatus(reqStatus) {
			return fmt.Errorf("invalid status %q (want NEW, IN_PROGRESS, COMPLETED or CANCELLED)", reqStatus)
		}
		if reqPriority != "" && !model.ValidPriority(reqPriority) {
			return fmt.Errorf("invalid priority %q (want NORMAL, HIGH or URGENT)", reqPriority)
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		page, err := client.Requests.List(context.Background(), api.RequestsFilter{
			Status:    reqStatus,
			Priority:  reqPriority,
			StartDate: reqStartDate,
			EndDate:   reqEndDate,
			Page:      reqPage,
			Size:      reqSize,
		})
		if err != nil {
			return fmt.Errorf("failed to list requests: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}

		if err := formatter.Table(
			[]string{"ID", "TOUR", "CLIENT", "STATUS", "PRIORITY", "EMPLOYEE"},
			requestRows(page.Content),
		); err != nil {
			return err
		}
		formatter.Line("Page %d/%d (%d requests total)", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var requestsGetCmd = &cobra.Command{
	Use:   "get <request-id>",
	Short: "Show one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		req, err := client.Requests.Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to get request: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(req)
		}

		formatter.Line("ID:       %d", req.ID)
		formatter.Line("Tour:     %s (id %d)", req.TourName, req.TourID)
		formatter.Line("Client:   %s <%s>", req.UserName, req.UserEmail)
		formatter.Line("Status:   %s", req.Status)
		formatter.Line("Priority: %s", req.Priority)
		if req.EmployeeName != "" {
			formatter.Line("Employee: %s", req.EmployeeName)
		}
		if req.Comment != "" {
			formatter.Line("Comment:  %s", req.Comment)
		}
		return nil
	},
}

var (
	reqTourID    int64
	reqUserName  string
	reqUserEmail string
	reqUserPhone string
	reqComment   string
)

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "File a request on a client's behalf",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reqTourID <= 0 {
			return fmt.Errorf("--tour-id is required")
		}
		if reqUserName == "" {
			return fmt.Errorf("--user-name is required")
		}
		if !strings.Contains(reqUserEmail, "@") {
			return fmt.Errorf("--user-email must be a valid email address")
		}

		client, _ := newClient()
		created, err := client.Requests.Create(context.Background(), model.ClientRequest{
			TourID:    reqTourID,
			UserName:  reqUserName,
			UserEmail: reqUserEmail,
			UserPhone: reqUserPhone,
			Comment:   reqComment,
		})
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		fmt.Printf("Created request %d (status %s)\n", created.ID, created.Status)
		return nil
	},
}

var reqEmployeeID int64

var requestsStatusCmd = &cobra.Command{
	Use:   "status <request-id> <new-status>",
	Short: "Move a request through its lifecycle",
	Long: `Update a request's status, optionally assigning an employee with
--employee-id. Assignment is accepted only when the new status is
IN_PROGRESS or COMPLETED.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}

		status := args[1]
		if !model.ValidStatus(status) {
			return fmt.Errorf("invalid status %q (want NEW, IN_PROGRESS, COMPLETED or CANCELLED)", status)
		}

		var employeeID *int64
		if cmd.Flags().Changed("employee-id") {
			employeeID = &reqEmployeeID
		}

		client, _ := newClient()
		updated, err := client.Requests.UpdateStatus(context.Background(), id, status, employeeID)
		if err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		fmt.Printf("Request %d is now %s", updated.ID, updated.Status)
		if updated.EmployeeName != "" {
			fmt.Printf(" (assigned to %s)", updated.EmployeeName)
		}
		fmt.Println()
		return nil
	},
}

var requestsByTourCmd = &cobra.Command{
	Use:   "by-tour <tour-id>",
	Short: "List the requests filed against one tour",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tourID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid tour ID %q", args[0])
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		page, err := client.Requests.ByTour(context.Background(), tourID, reqPage, reqSize)
		if err != nil {
			return fmt.Errorf("failed to list requests for tour: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}
		return formatter.Table(
			[]string{"ID", "TOUR", "CLIENT", "STATUS", "PRIORITY", "EMPLOYEE"},
			requestRows(page.Content),
		)
	},
}

func init() {
	requestsListCmd.Flags().StringVar(&reqStatus, "status", "", "filter by status")
	requestsListCmd.Flags().StringVar(&reqPriority, "priority", "", "filter by priority")
	requestsListCmd.Flags().StringVar(&reqStartDate, "start-date", "", "filter by creation date from (YYYY-MM-DD)")
	requestsListCmd.Flags().StringVar(&reqEndDate, "end-date", "", "filter by creation date to (YYYY-MM-DD)")
	requestsListCmd.Flags().IntVar(&reqPage, "page", 0, "page number (0-based)")
	requestsListCmd.Flags().IntVar(&reqSize, "size", 20, "page size")
	output.AddFormatFlag(requestsListCmd)
	output.AddFormatFlag(requestsGetCmd)
	output.AddFormatFlag(requestsByTourCmd)

	requestsCreateCmd.Flags().Int64Var(&reqTourID, "tour-id", 0, "tour to request")
	requestsCreateCmd.Flags().StringVar(&reqUserName, "user-name", "", "client name")
	requestsCreateCmd.Flags().StringVar(&reqUserEmail, "user-email", "", "client email")
	requestsCreateCmd.Flags().StringVar(&reqUserPhone, "user-phone", "", "client phone")
	requestsCreateCmd.Flags().StringVar(&reqComment, "comment", "", "request comment")

	requestsStatusCmd.Flags().Int64Var(&reqEmployeeID, "employee-id", 0, "employee to assign")

	requestsByTourCmd.Flags().IntVar(&reqPage, "page", 0, "page number (0-based)")
	requestsByTourCmd.Flags().IntVar(&reqSize, "size", 20, "page size")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsGetCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsStatusCmd)
	requestsCmd.AddCommand(requestsByTourCmd)
	rootCmd.AddCommand(requestsCmd)
}
