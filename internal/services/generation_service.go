package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/llm"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/metrics"
	"github.com/aditya-1310/Backend-Dynamic-Interface-Compiler/internal/models"
)

var (
	generator         llm.Client
	generationTimeout = 60 * time.Second
)

// InitGenerator sets the LLM client used by GenerateSchema.
func InitGenerator(client llm.Client, timeout time.Duration) {
	generator = client
	if timeout > 0 {
		generationTimeout = timeout
	}
}

// GenerateSchema asks the LLM for a component array matching prompt. The
// result is validated but never persisted.
func GenerateSchema(ctx context.Context, prompt string) ([]models.Component, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, invalidInput("Prompt is required and must be a string")
	}
	if generator == nil {
		return nil, errors.New("no LLM provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	start := time.Now()
	text, err := generator.Complete(ctx, BuildGenerationPrompt(prompt))
	elapsed := time.Since(start)
	if err != nil {
		err = translateProviderError(err)
		metrics.ObserveGeneration(generator.Name(), generationOutcome(err), elapsed)
		return nil, err
	}

	components, err := extractComponents(text)
	metrics.ObserveGeneration(generator.Name(), generationOutcome(err), elapsed)
	if err != nil {
		return nil, err
	}
	return components, nil
}

func translateProviderError(err error) error {
	switch {
	case errors.Is(err, llm.ErrAuth):
		return fmt.Errorf("%w: %w", ErrProviderAuth, err)
	case errors.Is(err, llm.ErrQuota):
		return fmt.Errorf("%w: %w", ErrProviderQuota, err)
	}
	return err
}

func generationOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrProviderAuth):
		return "auth_error"
	case errors.Is(err, ErrProviderQuota):
		return "quota_exceeded"
	case errors.Is(err, ErrMalformedGeneration):
		return "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return "provider_error"
}

// extractComponents turns free-text model output into validated components.
// A strict parse of the fence-stripped text is tried first, then the widest
// bracketed substring.
func extractComponents(text string) ([]models.Component, error) {
	cleaned := stripCodeFence(text)

	components, err := models.ParseComponents([]byte(cleaned))
	if errors.Is(err, models.ErrInvalidJSON) {
		bracketed, ok := bracketedArray(cleaned)
		if !ok {
			return nil, fmt.Errorf("%w: could not extract valid JSON from AI response", ErrMalformedGeneration)
		}
		components, err = models.ParseComponents([]byte(bracketed))
		if errors.Is(err, models.ErrInvalidJSON) {
			return nil, fmt.Errorf("%w: could not extract valid JSON from AI response: %v", ErrMalformedGeneration, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	return components, nil
}

// stripCodeFence removes a leading ```json or ``` marker and a trailing ```.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// bracketedArray returns the text from the first '[' to the last ']'.
func bracketedArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
