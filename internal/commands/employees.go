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

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Manage staff accounts and sales",
}

var (
	empActiveOnly bool
	empPage       int
	empSize       int
)

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		var active *bool
		if cmd.Flags().Changed("active") {
			active = &empActiveOnly
		}

		client, _ := newClient()
		page, err := client.Employees.List(context.Background(), active, empPage, empSize)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}

		rows := make([][]string, 0, len(page.Content))
		for _, e := range page.Content {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10),
				e.Username,
				e.FirstName + " " + e.LastName,
				e.Email,
				strconv.FormatBool(e.Active),
			})
		}
		return formatter.Table([]string{"ID", "USERNAME", "NAME", "EMAIL", "ACTIVE"}, rows)
	},
}

var employeesGetCmd = &cobra.Command{
	Use:   "get <employee-id>",
	Short: "Show one employee",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid employee ID %q", args[0])
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		emp, err := client.Employees.Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(emp)
		}

		formatter.Line("ID:       %d", emp.ID)
		formatter.Line("Username: %s", emp.Username)
		formatter.Line("Name:     %s %s", emp.FirstName, emp.LastName)
		formatter.Line("Email:    %s", emp.Email)
		if emp.Phone != "" {
			formatter.Line("Phone:    %s", emp.Phone)
		}
		if emp.HireDate != "" {
			formatter.Line("Hired:    %s", emp.HireDate)
		}
		formatter.Line("Active:   %t", emp.Active)
		return nil
	},
}

var (
	empUsername  string
	empPassword  string
	empFirstName string
	empLastName  string
	empEmail     string
	empPhone     string
	empHireDate  string
	empActive    bool
)

func employeeFromFlags(requirePassword bool) (model.Employee, error) {
	if empUsername == "" {
		return model.Employee{}, fmt.Errorf("--username is required")
	}
	if requirePassword && empPassword == "" {
		return model.Employee{}, fmt.Errorf("--password is required")
	}
	if empFirstName == "" || empLastName == "" {
		return model.Employee{}, fmt.Errorf("--first-name and --last-name are required")
	}
	if !strings.Contains(empEmail, "@") {
		return model.Employee{}, fmt.Errorf("--email must be a valid email address")
	}
	return model.Employee{
		Username:  empUsername,
		Password:  empPassword,
		FirstName: empFirstName,
		LastName:  empLastName,
		Email:     empEmail,
		Phone:     empPhone,
		HireDate:  empHireDate,
		Active:    empActive,
	}, nil
}

var employeesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	RunE: func(cmd *cobra.Command, args []string) error {
		emp, err := employeeFromFlags(true)
		if err != nil {
			return err
		}

		client, _ := newClient()
		created, err := client.Employees.Create(context.Background(), emp)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		fmt.Printf("Created employee %d: %s\n", created.ID, created.Username)
		return nil
	},
}

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <employee-id>",
	Short: "Update a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid employee ID %q", args[0])
		}

		emp, err := employeeFromFlags(false)
		if err != nil {
			return err
		}

		client, _ := newClient()
		updated, err := client.Employees.Update(context.Background(), id, emp)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		fmt.Printf("Updated employee %d: %s\n", updated.ID, updated.Username)
		return nil
	},
}

var (
	salesStartDate string
	salesEndDate   string
)

var employeesSalesCmd = &cobra.Command{
	Use:   "sales [employee-id]",
	Short: "Show sales aggregates",
	Long: `Without an argument, lists every employee's sales aggregate over the
range. With an employee ID, shows that employee's aggregate only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		r := api.SalesRange{StartDate: salesStartDate, EndDate: salesEndDate}
		formatter := output.New(format)

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid employee ID %q", args[0])
			}
			sales, err := client.Employees.Sales(context.Background(), id, r)
			if err != nil {
				return fmt.Errorf("failed to get employee sales: %w", err)
			}
			if formatter.IsJSON() {
				return formatter.JSON(sales)
			}
			formatter.Line("%s: %d sales, %.2f revenue", sales.EmployeeName, sales.TotalSales, sales.TotalRevenue)
			return nil
		}

		page, err := client.Employees.AllSales(context.Background(), r, empPage, empSize)
		if err != nil {
			return fmt.Errorf("failed to list sales: %w", err)
		}
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}

		rows := make([][]string, 0, len(page.Content))
		for _, s := range page.Content {
			rows = append(rows, []string{
				strconv.FormatInt(s.EmployeeID, 10),
				s.EmployeeName,
				strconv.FormatInt(s.TotalSales, 10),
				fmt.Sprintf("%.2f", s.TotalRevenue),
			})
		}
		return formatter.Table([]string{"ID", "EMPLOYEE", "SALES", "REVENUE"}, rows)
	},
}

// desk is the employee self-service surface, separated from the admin
// employees command because it acts on the authenticated employee only.
var deskCmd = &cobra.Command{
	Use:   "desk",
	Short: "Employee self-service: profile, request queue, own sales",
}

var deskProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your own employee record",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		emp, err := client.EmployeeDesk.Profile(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get profile: %w", err)
		}

		fmt.Printf("%s %s (%s) <%s>\n", emp.FirstName, emp.LastName, emp.Username, emp.Email)
		return nil
	},
}

var deskStatus string

var deskRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List requests assigned to you",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		page, err := client.EmployeeDesk.MyRequests(context.Background(), deskStatus, empPage, empSize)
		if err != nil {
			return fmt.Errorf("failed to list assigned requests: %w", err)
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

var deskAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List unassigned requests you can take",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		page, err := client.EmployeeDesk.AvailableRequests(context.Background(), deskStatus, empPage, empSize)
		if err != nil {
			return fmt.Errorf("failed to list available requests: %w", err)
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

var deskTakeCmd = &cobra.Command{
	Use:   "take <request-id>",
	Short: "Take an unassigned request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}

		client, _ := newClient()
		taken, err := client.EmployeeDesk.Take(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to take request: %w", err)
		}

		fmt.Printf("Request %d is now %s, assigned to you\n", taken.ID, taken.Status)
		return nil
	},
}

var deskStatusCmd = &cobra.Command{
	Use:   "status <request-id> <new-status>",
	Short: "Update one of your requests",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}

		status := args[1]
		if !model.ValidStatus(status) {
			return fmt.Errorf("invalid status %q (want NEW, IN_PROGRESS, COMPLETED or CANCELLED)", status)
		}

		client, _ := newClient()
		updated, err := client.EmployeeDesk.UpdateStatus(context.Background(), id, status)
		if err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}

		fmt.Printf("Request %d is now %s\n", updated.ID, updated.Status)
		return nil
	},
}

var deskSalesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Show your own sales aggregate",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		sales, err := client.EmployeeDesk.MySales(context.Background(), api.SalesRange{
			StartDate: salesStartDate,
			EndDate:   salesEndDate,
		})
		if err != nil {
			return fmt.Errorf("failed to get sales: %w", err)
		}

		fmt.Printf("%d sales, %.2f revenue\n", sales.TotalSales, sales.TotalRevenue)
		return nil
	},
}

func init() {
	employeesListCmd.Flags().BoolVar(&empActiveOnly, "active", true, "filter by active flag")
	employeesListCmd.Flags().IntVar(&empPage, "page", 0, "page number (0-based)")
	employeesListCmd.Flags().IntVar(&empSize, "size", 20, "page size")
	output.AddFormatFlag(employeesListCmd)
	output.AddFormatFlag(employeesGetCmd)
	output.AddFormatFlag(employeesSalesCmd)

	for _, c := range []*cobra.Command{employeesCreateCmd, employeesUpdateCmd} {
		c.Flags().StringVar(&empUsername, "username", "", "login username")
		c.Flags().StringVar(&empPassword, "password", "", "login password")
		c.Flags().StringVar(&empFirstName, "first-name", "", "first name")
		c.Flags().StringVar(&empLastName, "last-name", "", "last name")
		c.Flags().StringVar(&empEmail, "email", "", "email address")
		c.Flags().StringVar(&empPhone, "phone", "", "phone number")
		c.Flags().StringVar(&empHireDate, "hire-date", "", "hire date (YYYY-MM-DD)")
		c.Flags().BoolVar(&empActive, "active", true, "account is active")
	}

	employeesSalesCmd.Flags().StringVar(&salesStartDate, "start-date", "", "range start (YYYY-MM-DD)")
	employeesSalesCmd.Flags().StringVar(&salesEndDate, "end-date", "", "range end (YYYY-MM-DD)")

	employeesCmd.AddCommand(employeesListCmd)
	employeesCmd.AddCommand(employeesGetCmd)
	employeesCmd.AddCommand(employeesCreateCmd)
	employeesCmd.AddCommand(employeesUpdateCmd)
	employeesCmd.AddCommand(employeesSalesCmd)
	rootCmd.AddCommand(employeesCmd)

	for _, c := range []*cobra.Command{deskRequestsCmd, deskAvailableCmd} {
		c.Flags().StringVar(&deskStatus, "status", "", "filter by status")
		c.Flags().IntVar(&empPage, "page", 0, "page number (0-based)")
		c.Flags().IntVar(&empSize, "size", 20, "page size")
		output.AddFormatFlag(c)
	}
	deskSalesCmd.Flags().StringVar(&salesStartDate, "start-date", "", "range start (YYYY-MM-DD)")
	deskSalesCmd.Flags().StringVar(&salesEndDate, "end-date", "", "range end (YYYY-MM-DD)")

	deskCmd.AddCommand(deskProfileCmd)
	deskCmd.AddCommand(deskRequestsCmd)
	deskCmd.AddCommand(deskAvailableCmd)
	deskCmd.AddCommand(deskTakeCmd)
	deskCmd.AddCommand(deskStatusCmd)
	deskCmd.AddCommand(deskSalesCmd)
	rootCmd.AddCommand(deskCmd)
}
