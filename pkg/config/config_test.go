package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/saikamaik/airline-sub000/pkg/session"
)

func TestConfig_Load(t *testing.T) {
	viper.Reset()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if config == nil {
		t.Fatal("Config should not be nil")
	}

	if config.API.Endpoint != "http://localhost:8080/api" {
		t.Errorf("Expected default API endpoint 'http://localhost:8080/api', got '%s'", config.API.Endpoint)
	}
}

func TestConfig_LoadWithFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "travelctl-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configFile := filepath.Join(tempDir, "config.yaml")
	configContent := `
api:
  endpoint: "http://test.example.com:9090/api"
auth:
  token: "test-token"
  username: "admin"
  roles:
    - "ADMIN"
`

	err = os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	viper.Reset()
	viper.SetConfigFile(configFile)

	// Manually read config since Load() looks for config in predefined paths
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if config.API.Endpoint != "http://test.example.com:9090/api" {
		t.Errorf("Expected API endpoint 'http://test.example.com:9090/api', got '%s'", config.API.Endpoint)
	}

	if config.Auth.Token != "test-token" {
		t.Errorf("Expected token 'test-token', got '%s'", config.Auth.Token)
	}

	if config.Auth.Username != "admin" {
		t.Errorf("Expected username 'admin', got '%s'", config.Auth.Username)
	}

	if len(config.Auth.Roles) != 1 || config.Auth.Roles[0] != "ADMIN" {
		t.Errorf("Expected roles [ADMIN], got %v", config.Auth.Roles)
	}
}

func TestConfig_LoadWithEnvironmentVariables(t *testing.T) {
	originalEndpoint := os.Getenv("TRAVEL_API_ENDPOINT")
	originalToken := os.Getenv("TRAVEL_AUTH_TOKEN")

	os.Setenv("TRAVEL_API_ENDPOINT", "http://env.example.com:8080/api")
	os.Setenv("TRAVEL_AUTH_TOKEN", "env-token")

	defer func() {
		if originalEndpoint == "" {
			os.Unsetenv("TRAVEL_API_ENDPOINT")
		} else {
			os.Setenv("TRAVEL_API_ENDPOINT", originalEndpoint)
		}
		if originalToken == "" {
			os.Unsetenv("TRAVEL_AUTH_TOKEN")
		} else {
			os.Setenv("TRAVEL_AUTH_TOKEN", originalToken)
		}
	}()

	viper.Reset()
	viper.SetEnvPrefix("TRAVEL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.BindEnv("api.endpoint")
	viper.BindEnv("auth.token")
	viper.BindEnv("auth.username")

	viper.SetDefault("api.endpoint", "http://localhost:8080/api")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	if config.API.Endpoint != "http://env.example.com:8080/api" {
		t.Errorf("Expected API endpoint from env 'http://env.example.com:8080/api', got '%s'", config.API.Endpoint)
	}

	if config.Auth.Token != "env-token" {
		t.Errorf("Expected token from env 'env-token', got '%s'", config.Auth.Token)
	}
}

func TestConfig_Save(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "travelctl-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	config := &Config{
		API: APIConfig{
			Endpoint: "http://test.example.com:8080/api",
		},
		Auth: AuthConfig{
			Token:    "test-token",
			Username: "admin",
			Roles:    []string{"ADMIN"},
		},
	}

	err = config.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	configFile := filepath.Join(tempDir, ".travelctl", "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	viper.Reset()
	viper.SetConfigFile(configFile)

	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read saved config file: %v", err)
	}

	var loadedConfig Config
	if err := viper.Unmarshal(&loadedConfig); err != nil {
		t.Fatalf("Failed to unmarshal saved config: %v", err)
	}

	if loadedConfig.API.Endpoint != config.API.Endpoint {
		t.Errorf("API endpoint not saved correctly. Expected '%s', got '%s'",
			config.API.Endpoint, loadedConfig.API.Endpoint)
	}

	if loadedConfig.Auth.Token != config.Auth.Token {
		t.Errorf("Token not saved correctly. Expected '%s', got '%s'",
			config.Auth.Token, loadedConfig.Auth.Token)
	}

	if loadedConfig.Auth.Username != config.Auth.Username {
		t.Errorf("Username not saved correctly. Expected '%s', got '%s'",
			config.Auth.Username, loadedConfig.Auth.Username)
	}
}

func TestConfig_SessionRoundTrip(t *testing.T) {
	config := &Config{
		Auth: AuthConfig{
			Token:    "tok",
			Username: "admin",
			Roles:    []string{"ADMIN", "EMPLOYEE"},
		},
	}

	store := config.Session()
	if !store.IsAuthenticated() {
		t.Fatal("Store seeded from config should be authenticated")
	}
	if !store.HasRole("EMPLOYEE") {
		t.Error("Role list not carried into session store")
	}

	store.Clear()
	config.SetSession(store)

	if config.Auth.Token != "" || config.Auth.Username != "" {
		t.Error("SetSession after Clear should empty the persisted auth fields")
	}
}

func TestConfig_SessionEmpty(t *testing.T) {
	config := &Config{}

	store := config.Session()
	if store.IsAuthenticated() {
		t.Error("Store from empty config should not be authenticated")
	}

	store.Set(session.Session{Token: "t", Username: "u", Roles: []string{"ADMIN"}})
	config.SetSession(store)

	if config.Auth.Token != "t" || config.Auth.Username != "u" {
		t.Error("SetSession should persist the store's current session")
	}
}
