package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_NoRetries(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Len(t, cfg.Tasks, 11)
}

func TestConfig_TaskTimeoutFallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 9000

	assert.Equal(t, 15000, cfg.TaskTimeout(TaskEmailTriage))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskDraftReply))
	assert.Equal(t, 9000, cfg.TaskTimeout(TaskType("unknown")))
}

func TestConfig_ResolvePicksProviderFromKey(t *testing.T) {
	withKey := DefaultConfig()
	withKey.APIKey = "k"
	withKey.Resolve()
	assert.Equal(t, ProviderGemini, withKey.Provider)
	assert.Equal(t, defaultGeminiModel, withKey.Model)

	without := DefaultConfig()
	without.Resolve()
	assert.Equal(t, ProviderNone, without.Provider)

	ollama := Config{Provider: ProviderOllama}
	ollama.Resolve()
	assert.Equal(t, defaultOllamaURL, ollama.Endpoint)
	assert.Equal(t, defaultOllamaModel, ollama.Model)
	assert.NotEmpty(t, ollama.Tasks)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	assert.Error(t, cfg.Validate(), "gemini without key")

	cfg.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "openai"
	assert.Error(t, cfg.Validate())

	cfg.Provider = ProviderNone
	cfg.MaxRetries = -1
	assert.Error(t, cfg.Validate())
}
