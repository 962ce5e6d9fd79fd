// Package llm wraps the text-completion providers used to generate UI schemas.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuth is returned when the provider rejects or lacks credentials.
	ErrAuth = errors.New("llm: invalid API key")
	// ErrQuota is returned when the provider reports exhausted quota or rate limits.
	ErrQuota = errors.New("llm: quota exceeded")
)

// Client sends a single prompt and returns the model's free-text reply.
// Implementations never retry.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type options struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

type Option func(*options)

func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

func applyOptions(defaultModel string, opts []Option) options {
	o := options{model: defaultModel}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// classify maps a provider failure to ErrAuth or ErrQuota when the status code
// or message identifies one, and wraps anything else with the provider name.
func classify(provider string, statusCode int, err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden,
		strings.Contains(msg, "api key"), strings.Contains(msg, "api_key_invalid"):
		return fmt.Errorf("%w: %s: %w", ErrAuth, provider, err)
	case statusCode == http.StatusTooManyRequests,
		strings.Contains(msg, "quota"), strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %s: %w", ErrQuota, provider, err)
	}
	return fmt.Errorf("%s: %w", provider, err)
}
