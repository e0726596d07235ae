package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

type ollamaBackend struct {
	endpoint string
	model    string
	http     *http.Client
}

func newOllamaBackend(cfg Config) *ollamaBackend {
	return &ollamaBackend{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	System  string        `json:"system,omitempty"`
	Prompt  string        `json:"prompt"`
	Format  string        `json:"format"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (o *ollamaBackend) generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, string, error) {
	data, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		System: system,
		Prompt: prompt,
		Format: "json",
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.http.Do(httpReq)
	if err != nil {
		return "", "", err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("ollama returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", "", fmt.Errorf("decoding response: %w", err)
	}
	return resp.Response, resp.Model, nil
}

func (o *ollamaBackend) available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
