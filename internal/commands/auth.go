package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
}

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Authenticate with the travel agency backend",
	Long: `Authenticate with username and password. The returned bearer token and
role list are saved to the config file and attached to every later request.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var username string
		if len(args) > 0 {
			username = args[0]
		} else {
			fmt.Print("Username: ")
			fmt.Scanln(&username)
		}
		if username == "" {
			return fmt.Errorf("username is required")
		}

		var password string
		if loginPassword != "" {
			password = loginPassword
		} else {
			fmt.Print("Password: ")
			passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(passwordBytes)
			fmt.Println()
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}

		client, store := newClient()
		resp, err := client.Login(ctx, username, password)
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		cfg.SetSession(store)
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Logged in as %s (roles: %v). Token saved to config.\n", resp.Username, resp.Roles)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		client.Logout()

		cfg.SetSession(store)
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.Token == "" {
			fmt.Println("Not authenticated. Run 'travelctl auth login' to authenticate.")
			return nil
		}

		fmt.Printf("Authenticated as: %s\n", cfg.Auth.Username)
		fmt.Printf("Roles: %v\n", cfg.Auth.Roles)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password for authentication (for non-interactive use)")
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
