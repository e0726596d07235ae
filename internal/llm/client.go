package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// GenerateRequest holds the parameters for one JSON-mode generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a language model that answers in JSON.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the backend is configured and reachable.
	Available(ctx context.Context) bool
}

// backend performs a single attempt against a concrete provider.
type backend interface {
	generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (text, model string, err error)
	available(ctx context.Context) bool
}

// New builds the Client for cfg.Provider. Provider none yields a client
// whose every call fails with ErrDisabled.
func New(ctx context.Context, cfg Config, observer Observer) (Client, error) {
	cfg.Resolve()
	if observer == nil {
		observer = NoopObserver{}
	}
	var b backend
	switch cfg.Provider {
	case ProviderNone:
		return disabledClient{}, nil
	case ProviderOllama:
		b = newOllamaBackend(cfg)
	case ProviderGemini:
		g, err := newGeminiBackend(ctx, cfg)
		if err != nil {
			return nil, err
		}
		b = g
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
	return &client{cfg: cfg, backend: b, observer: observer}, nil
}

// NewOllamaClient creates a Client that talks to an Ollama server.
func NewOllamaClient(cfg Config, observer Observer) Client {
	cfg.Provider = ProviderOllama
	cfg.Resolve()
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, backend: newOllamaBackend(cfg), observer: observer}
}

type client struct {
	cfg      Config
	backend  backend
	observer Observer
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	tried := 0
	for i := 0; i < attempts; i++ {
		tried++
		text, model, err := c.backend.generate(ctx, req.SystemPrompt, req.UserPrompt, temp, maxTok)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Task: req.Task, Provider: c.cfg.Provider, Model: c.cfg.Model,
				LatencyMs: latency, Attempts: tried, Success: true,
			})
			if model == "" {
				model = c.cfg.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err

		// Don't retry once the deadline has passed.
		if ctx.Err() != nil {
			break
		}
	}

	var err error
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = ErrTimeout
	case ctx.Err() != nil:
		err = fmt.Errorf("llm request cancelled: %w", ctx.Err())
	case isConnectionError(lastErr):
		err = ErrUnavailable
	default:
		err = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}
	c.observer.OnCallComplete(CallEvent{
		Task: req.Task, Provider: c.cfg.Provider, Model: c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(), Attempts: tried,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *client) Available(ctx context.Context) bool {
	return c.backend.available(ctx)
}

type disabledClient struct{}

func (disabledClient) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, ErrDisabled
}

func (disabledClient) Available(context.Context) bool { return false }

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return "CANCELLED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrDisabled):
		return "DISABLED"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
