package llm

import "fmt"

// TaskType identifies the kind of advisory call being made.
type TaskType string

const (
	TaskTaskSuggestions   TaskType = "task_suggestions"
	TaskClientInsights    TaskType = "client_insights"
	TaskProspects         TaskType = "prospects"
	TaskTaskAdvice        TaskType = "task_advice"
	TaskDashboardInsights TaskType = "dashboard_insights"
	TaskEmailTriage       TaskType = "email_triage"
	TaskDraftReply        TaskType = "draft_reply"
	TaskDealHealth        TaskType = "deal_health"
	TaskNudge             TaskType = "nudge"
	TaskContentIdeas      TaskType = "content_ideas"
	TaskBlockerAnalysis   TaskType = "blocker_analysis"
)

// Provider names a model backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
	ProviderNone   Provider = "none"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOllamaModel = "llama3.2"
	defaultOllamaURL   = "http://localhost:11434"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the model subsystem.
type Config struct {
	Provider   Provider `yaml:"provider"`
	APIKey     string   `yaml:"api_key"`
	Endpoint   string   `yaml:"endpoint"`
	Model      string   `yaml:"model"`
	TimeoutMs  int      `yaml:"timeout_ms"`
	MaxRetries int      `yaml:"max_retries"`
	LogCalls   bool     `yaml:"log_calls"`

	Tasks map[TaskType]TaskConfig `yaml:"-"`
}

// DefaultConfig returns a Config with no provider selected and a single
// attempt per call.
func DefaultConfig() Config {
	return Config{
		Provider:   "",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskTaskSuggestions:   {Temperature: 0.4, MaxTokens: 1024},
			TaskClientInsights:    {Temperature: 0.3, MaxTokens: 1024},
			TaskProspects:         {Temperature: 0.7, MaxTokens: 2048, TimeoutMs: 45000},
			TaskTaskAdvice:        {Temperature: 0.3, MaxTokens: 1024},
			TaskDashboardInsights: {Temperature: 0.3, MaxTokens: 1024},
			TaskEmailTriage:       {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 15000},
			TaskDraftReply:        {Temperature: 0.5, MaxTokens: 1024},
			TaskDealHealth:        {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 15000},
			TaskNudge:             {Temperature: 0.6, MaxTokens: 512, TimeoutMs: 15000},
			TaskContentIdeas:      {Temperature: 0.8, MaxTokens: 2048},
			TaskBlockerAnalysis:   {Temperature: 0.2, MaxTokens: 1024},
		},
	}
}

// Resolve fills provider-dependent defaults. An unset provider becomes
// gemini when an API key is present and none otherwise.
func (c *Config) Resolve() {
	if c.Provider == "" {
		if c.APIKey != "" {
			c.Provider = ProviderGemini
		} else {
			c.Provider = ProviderNone
		}
	}
	switch c.Provider {
	case ProviderGemini:
		if c.Model == "" {
			c.Model = defaultGeminiModel
		}
	case ProviderOllama:
		if c.Model == "" {
			c.Model = defaultOllamaModel
		}
		if c.Endpoint == "" {
			c.Endpoint = defaultOllamaURL
		}
	}
	if c.Tasks == nil {
		c.Tasks = DefaultConfig().Tasks
	}
}

// Validate reports configuration problems for the selected provider.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("ai provider gemini requires GEMINI_API_KEY")
		}
	case ProviderOllama, ProviderNone, "":
	default:
		return fmt.Errorf("invalid ai provider %q (valid: gemini, ollama, none)", c.Provider)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("ai timeout must be positive, got %dms", c.TimeoutMs)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("ai max retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}

// TaskTimeout returns the effective timeout for a task in milliseconds.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
