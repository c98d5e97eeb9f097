package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/secrets"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// GitHub configuration
	GitHub GitHubConfig

	// Jira configuration
	Jira JiraConfig

	// Inbound webhook configuration
	Webhook WebhookConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// GitHubConfig holds GitHub API configuration
type GitHubConfig struct {
	Token  string // API token with repo scope
	APIURL string // override for tests; defaults to api.github.com
}

// JiraConfig holds Jira API configuration
type JiraConfig struct {
	BaseURL  string // site URL, e.g. https://example.atlassian.net
	CloudID  string // optional; routes API calls through the scoped token gateway
	Email    string // service account email
	APIToken string // service account API token
}

// WebhookConfig holds inbound webhook configuration
type WebhookConfig struct {
	Secret string // shared secret; empty disables the check entirely
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load loads configuration from environment variables, resolving credential
// values through the given secret provider.
func Load(provider secrets.Provider) (*Config, error) {
	// Try to load .env file (ignore errors - it's optional)
	_ = godotenv.Load(".env")

	githubToken, err := provider.Get("GITHUB_TOKEN")
	if err != nil {
		return nil, fmt.Errorf("github token: %w", err)
	}
	jiraBaseURL, err := provider.Get("JIRA_BASE_URL")
	if err != nil {
		return nil, fmt.Errorf("jira base url: %w", err)
	}
	jiraEmail, err := provider.Get("JIRA_EMAIL")
	if err != nil {
		return nil, fmt.Errorf("jira email: %w", err)
	}
	jiraToken, err := provider.Get("JIRA_API_TOKEN")
	if err != nil {
		return nil, fmt.Errorf("jira api token: %w", err)
	}

	// Optional values: a provider miss means "not configured".
	webhookSecret, _ := provider.Get("WEBHOOK_SECRET")
	cloudID, _ := provider.Get("JIRA_CLOUD_ID")

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", ""),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		GitHub: GitHubConfig{
			Token:  githubToken,
			APIURL: getEnv("GITHUB_API_URL", "https://api.github.com"),
		},
		Jira: JiraConfig{
			BaseURL:  strings.TrimRight(jiraBaseURL, "/"),
			CloudID:  cloudID,
			Email:    jiraEmail,
			APIToken: jiraToken,
		},
		Webhook: WebhookConfig{
			Secret: webhookSecret,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.GitHub.Token == "" {
		return fmt.Errorf("github token is required")
	}

	if u, err := url.Parse(c.Jira.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid jira base url: %q", c.Jira.BaseURL)
	}

	if c.Jira.Email == "" || c.Jira.APIToken == "" {
		return fmt.Errorf("jira service account credentials are required")
	}

	return nil
}

// Address returns the server address in the format host:port
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions to get environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
