package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
base_url: http://localhost:4111
agent_id: weather
resource_id: user-42
thread_id: thread-1

max_steps: 5
temperature: 0.2
instructions: Be concise.

retries: 2
backoff_ms: 50
max_backoff_ms: 1000
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4111", cfg.BaseURL)
	assert.Equal(t, "weather", cfg.AgentID)
	assert.Equal(t, "user-42", cfg.ResourceID)
	assert.Equal(t, "thread-1", cfg.ThreadID)

	assert.Equal(t, 5, cfg.MaxSteps)
	require.NotNil(t, cfg.Temperature)
	assert.InEpsilon(t, 0.2, *cfg.Temperature, 1e-9)
	assert.Equal(t, "Be concise.", cfg.Instructions)

	assert.Equal(t, 2, cfg.Retries)
	assert.Equal(t, 50, cfg.BackoffMs)
	assert.Equal(t, 1000, cfg.MaxBackoffMs)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/no/such/file.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("CHATWIRE_TEST_AGENT", "env-agent")

	yaml := `
agent_id: ${CHATWIRE_TEST_AGENT}
resource_id: user-1
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-agent", cfg.AgentID)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{AgentID: "a", ResourceID: "r"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing agent_id", Config{ResourceID: "r"}},
		{"missing resource_id", Config{AgentID: "a"}},
		{"negative retries", Config{AgentID: "a", ResourceID: "r", Retries: -1}},
		{"negative backoff", Config{AgentID: "a", ResourceID: "r", BackoffMs: -1}},
		{"backoff above max", Config{AgentID: "a", ResourceID: "r", BackoffMs: 200, MaxBackoffMs: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestConfigNewClient_Defaults(t *testing.T) {
	c := Config{AgentID: "a", ResourceID: "r"}.NewClient()

	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, 3, c.Retries)
	assert.Equal(t, 100*time.Millisecond, c.Backoff)
	assert.Equal(t, 5*time.Second, c.MaxBackoff)
}

func TestConfigNewClient_Overrides(t *testing.T) {
	cfg := Config{
		BaseURL:      "http://example.test",
		AgentID:      "a",
		ResourceID:   "r",
		Retries:      7,
		BackoffMs:    25,
		MaxBackoffMs: 250,
	}
	c := cfg.NewClient()

	assert.Equal(t, "http://example.test", c.BaseURL)
	assert.Equal(t, 7, c.Retries)
	assert.Equal(t, 25*time.Millisecond, c.Backoff)
	assert.Equal(t, 250*time.Millisecond, c.MaxBackoff)
}
