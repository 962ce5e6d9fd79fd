package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const (
	GeminiProviderName = "gemini"
	DefaultGeminiModel = "gemini-1.5-flash"
)

// Gemini calls the Google Gemini API through the genai SDK.
type Gemini struct {
	apiKey string
	opts   options

	mutex  sync.Mutex
	client *genai.Client
}

var _ Client = (*Gemini)(nil)

func NewGemini(apiKey string, opts ...Option) *Gemini {
	return &Gemini{
		apiKey: apiKey,
		opts:   applyOptions(DefaultGeminiModel, opts),
	}
}

func (g *Gemini) Name() string {
	return GeminiProviderName
}

func (g *Gemini) Model() string {
	return g.opts.model
}

func (g *Gemini) initClient(ctx context.Context) (*genai.Client, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.opts.httpClient,
	}
	if g.opts.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.opts.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g.client = client
	return g.client, nil
}

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY is not configured", ErrAuth)
	}

	client, err := g.initClient(ctx)
	if err != nil {
		return "", classify(GeminiProviderName, 0, err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.opts.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(GeminiProviderName, geminiStatusCode(err), err)
	}
	if resp == nil {
		return "", fmt.Errorf("%s: empty response", GeminiProviderName)
	}

	return resp.Text(), nil
}

func geminiStatusCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
