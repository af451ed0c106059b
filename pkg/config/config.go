package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/saikamaik/airline-sub000/pkg/session"
)

// Config is the CLI configuration, persisted to ~/.travelctl/config.yaml.
// The auth section is the device-local session state: bearer token, username
// and role list. Nothing else is persisted client-side.
type Config struct {
	API  APIConfig  `mapstructure:"api"`
	Auth AuthConfig `mapstructure:"auth"`
}

type APIConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type AuthConfig struct {
	Token    string   `mapstructure:"token"`
	Username string   `mapstructure:"username"`
	Roles    []string `mapstructure:"roles"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.travelctl")
	viper.AddConfigPath("/etc/travelctl/")

	// Environment variable overrides: TRAVEL_API_ENDPOINT, TRAVEL_AUTH_TOKEN, ...
	viper.SetEnvPrefix("TRAVEL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.BindEnv("api.endpoint")
	viper.BindEnv("auth.token")
	viper.BindEnv("auth.username")

	viper.SetDefault("api.endpoint", "http://localhost:8080/api")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func (c *Config) Save() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".travelctl")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	viper.SetConfigFile(configFile)

	viper.Set("api.endpoint", c.API.Endpoint)
	viper.Set("auth.token", c.Auth.Token)
	viper.Set("auth.username", c.Auth.Username)
	viper.Set("auth.roles", c.Auth.Roles)

	return viper.WriteConfig()
}

// Session builds a session store seeded from the persisted auth fields.
func (c *Config) Session() *session.Store {
	store := session.NewStore()
	if c.Auth.Token != "" {
		store.Set(session.Session{
			Token:    c.Auth.Token,
			Username: c.Auth.Username,
			Roles:    c.Auth.Roles,
		})
	}
	return store
}

// SetSession copies the store's current session into the persisted fields.
// An unauthenticated store clears them.
func (c *Config) SetSession(store *session.Store) {
	sess := store.Current()
	c.Auth.Token = sess.Token
	c.Auth.Username = sess.Username
	c.Auth.Roles = sess.Roles
}
