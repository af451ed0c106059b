// Package commands implements the travelctl command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/saikamaik/airline-sub000/pkg/api"
	"github.com/saikamaik/airline-sub000/pkg/config"
	"github.com/saikamaik/airline-sub000/pkg/session"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "travelctl",
	Short: "Travel agency management CLI",
	Long: `A command-line interface for the travel agency backend: tours, flights,
client requests, employees, clients, statistics and analytics. Admin and
employee operations require authentication via 'travelctl auth login'.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.travelctl/config.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "API endpoint URL")
	rootCmd.PersistentFlags().String("token", "", "bearer token for authentication")

	viper.BindPFlag("api.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("auth.token", rootCmd.PersistentFlags().Lookup("token"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func GetConfig() *config.Config {
	return cfg
}

// newClient builds an API client seeded with the persisted session.
func newClient() (*api.Client, *session.Store) {
	store := cfg.Session()
	return api.New(api.Options{BaseURL: cfg.API.Endpoint}, store), store
}
