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

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage customer records",
}

var (
	clientSearch string
	clientVIP    bool
	clientPage   int
	clientSize   int
)

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		filter := api.ClientsFilter{
			Search: clientSearch,
			Page:   clientPage,
			Size:   clientSize,
		}
		if cmd.Flags().Changed("vip") {
			filter.VIPStatus = &clientVIP
		}

		client, _ := newClient()
		page, err := client.Clients.List(context.Background(), filter)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(page)
		}

		rows := make([][]string, 0, len(page.Content))
		for _, c := range page.Content {
			rows = append(rows, []string{
				strconv.FormatInt(c.ID, 10),
				c.FirstName + " " + c.LastName,
				c.Email,
				strconv.FormatBool(c.VIPStatus),
				strconv.FormatInt(c.TotalRequests, 10),
			})
		}
		if err := formatter.Table([]string{"ID", "NAME", "EMAIL", "VIP", "REQUESTS"}, rows); err != nil {
			return err
		}
		formatter.Line("Page %d/%d (%d clients total)", page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var clientsGetCmd = &cobra.Command{
	Use:   "get <client-id>",
	Short: "Show one client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID %q", args[0])
		}

		format, err := output.GetFormatFromCmd(cmd)
		if err != nil {
			return err
		}

		client, _ := newClient()
		cl, err := client.Clients.Get(context.Background(), id)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}

		formatter := output.New(format)
		if formatter.IsJSON() {
			return formatter.JSON(cl)
		}

		formatter.Line("ID:       %d", cl.ID)
		formatter.Line("Name:     %s %s", cl.FirstName, cl.LastName)
		formatter.Line("Email:    %s", cl.Email)
		if cl.Phone != "" {
			formatter.Line("Phone:    %s", cl.Phone)
		}
		formatter.Line("VIP:      %t", cl.VIPStatus)
		formatter.Line("Active:   %t", cl.Active)
		formatter.Line("Requests: %d", cl.TotalRequests)
		if cl.Notes != "" {
			formatter.Line("Notes:    %s", cl.Notes)
		}
		return nil
	},
}

var (
	clFirstName string
	clLastName  string
	clEmail     string
	clPhone     string
	clBirthDate string
	clNotes     string
	clActive    bool
)

func clientFromFlags() (model.Client, error) {
	if clFirstName == "" || clLastName == "" {
		return model.Client{}, fmt.Errorf("--first-name and --last-name are required")
	}
	if !strings.Contains(clEmail, "@") {
		return model.Client{}, fmt.Errorf("--email must be a valid email address")
	}
	return model.Client{
		FirstName: clFirstName,
		LastName:  clLastName,
		Email:     clEmail,
		Phone:     clPhone,
		BirthDate: clBirthDate,
		Notes:     clNotes,
		Active:    clActive,
	}, nil
}

var clientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a client record",
	RunE: func(cmd *cobra.Command, args []string) error {
		cl, err := clientFromFlags()
		if err != nil {
			return err
		}

		client, _ := newClient()
		created, err := client.Clients.Create(context.Background(), cl)
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("Created client %d: %s %s\n", created.ID, created.FirstName, created.LastName)
		return nil
	},
}

var clientsUpdateCmd = &cobra.Command{
	Use:   "update <client-id>",
	Short: "Update a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID %q", args[0])
		}

		cl, err := clientFromFlags()
		if err != nil {
			return err
		}

		client, _ := newClient()
		updated, err := client.Clients.Update(context.Background(), id, cl)
		if err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("Updated client %d\n", updated.ID)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID %q", args[0])
		}

		client, _ := newClient()
		if err := client.Clients.Delete(context.Background(), id); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("Deleted client %d\n", id)
		return nil
	},
}

var clientsVIPCmd = &cobra.Command{
	Use:   "vip <client-id> <true|false>",
	Short: "Toggle a client's VIP flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client ID %q", args[0])
		}
		vip, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid VIP value %q (want true or false)", args[1])
		}

		client, _ := newClient()
		updated, err := client.Clients.SetVIPStatus(context.Background(), id, vip)
		if err != nil {
			return fmt.Errorf("failed to set VIP status: %w", err)
		}

		fmt.Printf("Client %d VIP status: %t\n", updated.ID, updated.VIPStatus)
		return nil
	},
}

func init() {
	clientsListCmd.Flags().StringVar(&clientSearch, "search", "", "match against name and email")
	clientsListCmd.Flags().BoolVar(&clientVIP, "vip", false, "filter by VIP flag")
	clientsListCmd.Flags().IntVar(&clientPage, "page", 0, "page number (0-based)")
	clientsListCmd.Flags().IntVar(&clientSize, "size", 20, "page size")
	output.AddFormatFlag(clientsListCmd)
	output.AddFormatFlag(clientsGetCmd)

	for _, c := range []*cobra.Command{clientsCreateCmd, clientsUpdateCmd} {
		c.Flags().StringVar(&clFirstName, "first-name", "", "first name")
		c.Flags().StringVar(&clLastName, "last-name", "", "last name")
		c.Flags().StringVar(&clEmail, "email", "", "email address")
		c.Flags().StringVar(&clPhone, "phone", "", "phone number")
		c.Flags().StringVar(&clBirthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
		c.Flags().StringVar(&clNotes, "notes", "", "free-form notes")
		c.Flags().BoolVar(&clActive, "active", true, "record is active")
	}

	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsGetCmd)
	clientsCmd.AddCommand(clientsCreateCmd)
	clientsCmd.AddCommand(clientsUpdateCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)
	clientsCmd.AddCommand(clientsVIPCmd)
	rootCmd.AddCommand(clientsCmd)
}
