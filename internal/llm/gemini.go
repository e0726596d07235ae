package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiBackend struct {
	client *genai.Client
	model  string
}

func newGeminiBackend(ctx context.Context, cfg Config) (*geminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiBackend{client: client, model: cfg.Model}, nil
}

func (g *geminiBackend) generate(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, string, error) {
	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(temperature)),
	}
	if system != "" {
		gc.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if maxTokens > 0 {
		gc.MaxOutputTokens = int32(maxTokens)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), gc)
	if err != nil {
		return "", "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", "", fmt.Errorf("gemini returned no text")
	}
	return text, resp.ModelVersion, nil
}

// available reports configuration only; the API has no cheap health probe.
func (g *geminiBackend) available(context.Context) bool {
	return g.client != nil
}
