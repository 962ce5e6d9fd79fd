package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	OpenAIProviderName = "openai"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAI calls an OpenAI compatible chat completions endpoint.
type OpenAI struct {
	apiKey string
	opts   options
	client openai.Client
}

var _ Client = (*OpenAI)(nil)

func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	o := &OpenAI{
		apiKey: apiKey,
		opts:   applyOptions(DefaultOpenAIModel, opts),
	}

	requestOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if o.opts.baseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(o.opts.baseURL))
	}
	if o.opts.httpClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(o.opts.httpClient))
	}
	o.client = openai.NewClient(requestOpts...)
	return o
}

func (o *OpenAI) Name() string {
	return OpenAIProviderName
}

func (o *OpenAI) Model() string {
	return o.opts.model
}

func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not configured", ErrAuth)
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.opts.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", classify(OpenAIProviderName, apiErr.StatusCode, err)
		}
		return "", classify(OpenAIProviderName, 0, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", OpenAIProviderName)
	}

	return completion.Choices[0].Message.Content, nil
}
