package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DATABASE_URL", "CURTISOS_ADDR", "CURTISOS_LOG_LEVEL", "CURTISOS_LOG_FORMAT",
		"CURTISOS_AI_PROVIDER", "GEMINI_API_KEY", "CURTISOS_AI_MODEL", "CURTISOS_AI_ENDPOINT",
		"CURTISOS_AI_TIMEOUT_MS", "CURTISOS_AI_MAX_RETRIES", "CURTISOS_AI_LOG_CALLS",
		"GMAIL_CLIENT_ID", "GMAIL_CLIENT_SECRET", "GMAIL_REFRESH_TOKEN",
		"CURTISOS_MAIL_QUERY", "CURTISOS_MAIL_MAX_RESULTS",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_DefaultsWithDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", ":memory:")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.Database.URL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, FormatAuto, cfg.Log.Format)
	assert.Equal(t, llm.ProviderNone, cfg.AI.Provider)
	assert.Equal(t, 0, cfg.AI.MaxRetries)
	assert.False(t, cfg.Mail.Configured())
	assert.Equal(t, "in:inbox newer_than:7d", cfg.Mail.Query)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestLoad_GeminiKeySelectsGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "data/curtisos.db")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "curtisos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: file:from-yaml.db
server:
  addr: ":9000"
  shutdown_timeout: 3s
log:
  level: debug
  format: json
ai:
  provider: ollama
  model: mistral
  timeout_ms: 5000
`), 0o644))
	t.Setenv("CURTISOS_ADDR", "127.0.0.1:7000")
	t.Setenv("CURTISOS_AI_MAX_RETRIES", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file:from-yaml.db", cfg.Database.URL)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr, "env wins over yaml")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, FormatJSON, cfg.Log.Format)
	assert.Equal(t, llm.ProviderOllama, cfg.AI.Provider)
	assert.Equal(t, "mistral", cfg.AI.Model)
	assert.Equal(t, "http://localhost:11434", cfg.AI.Endpoint)
	assert.Equal(t, 5000, cfg.AI.TimeoutMs)
	assert.Equal(t, 2, cfg.AI.MaxRetries)
	assert.NotEmpty(t, cfg.AI.Tasks, "task defaults survive yaml decoding")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", ":memory:")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("CURTISOS_LOG_LEVEL", "loud")
	t.Setenv("CURTISOS_LOG_FORMAT", "xml")
	t.Setenv("CURTISOS_AI_PROVIDER", "gemini")
	t.Setenv("CURTISOS_AI_TIMEOUT_MS", "soon")
	t.Setenv("GMAIL_CLIENT_ID", "only-one")

	_, err := Load("")
	require.Error(t, err)
	for _, want := range []string{
		"DATABASE_URL is required",
		`invalid log level "loud"`,
		`invalid log format "xml"`,
		"requires GEMINI_API_KEY",
		"CURTISOS_AI_TIMEOUT_MS",
		"GMAIL_CLIENT_SECRET",
	} {
		assert.ErrorContains(t, err, want)
	}
}
