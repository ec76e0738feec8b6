package session

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/germanamz/chatwire/pkg/agentclient"
)

// DefaultBaseURL is used when the configuration does not name a service
// endpoint.
const DefaultBaseURL = "http://localhost:4111"

// Config selects the target agent and thread, and carries the transport and
// generation options forwarded to the service.
type Config struct {
	BaseURL    string `yaml:"base_url"`
	AgentID    string `yaml:"agent_id"`
	ResourceID string `yaml:"resource_id"`
	ThreadID   string `yaml:"thread_id"`

	// Generation options, forwarded verbatim to the service.
	MaxSteps     int            `yaml:"max_steps"`
	Temperature  *float64       `yaml:"temperature"`
	Instructions string         `yaml:"instructions"`
	Output       map[string]any `yaml:"output"`

	// Transport retry policy.
	Retries      int `yaml:"retries"`
	BackoffMs    int `yaml:"backoff_ms"`
	MaxBackoffMs int `yaml:"max_backoff_ms"`
}

// LoadConfig reads a YAML file and returns a Config. Environment variables
// referenced as ${VAR} or $VAR in the YAML are expanded before parsing, so
// endpoints and identifiers can live in the environment (e.g. loaded from a
// .env file) rather than committed in the config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("session: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("session: parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.AgentID == "" {
		return fmt.Errorf("session: config: agent_id is required")
	}
	if c.ResourceID == "" {
		return fmt.Errorf("session: config: resource_id is required")
	}
	if c.Retries < 0 {
		return fmt.Errorf("session: config: retries must not be negative")
	}
	if c.BackoffMs < 0 || c.MaxBackoffMs < 0 {
		return fmt.Errorf("session: config: backoff delays must not be negative")
	}
	if c.MaxBackoffMs > 0 && c.BackoffMs > c.MaxBackoffMs {
		return fmt.Errorf("session: config: backoff_ms exceeds max_backoff_ms")
	}
	return nil
}

// NewClient builds an agentclient.Client from the configuration, applying
// defaults for the endpoint and retry policy.
func (c Config) NewClient() *agentclient.Client {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := agentclient.New(baseURL)
	if c.Retries > 0 {
		client.Retries = c.Retries
	}
	if c.BackoffMs > 0 {
		client.Backoff = time.Duration(c.BackoffMs) * time.Millisecond
	}
	if c.MaxBackoffMs > 0 {
		client.MaxBackoff = time.Duration(c.MaxBackoffMs) * time.Millisecond
	}
	return client
}
