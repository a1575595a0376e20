package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI identifies languages with an OpenAI chat model.
type OpenAI struct {
	client openai.Client
	model  string
	opts   []option.RequestOption
}

// OpenAIOption is a functional option for configuring OpenAI.
type OpenAIOption func(*OpenAI)

// WithOpenAIModel sets the chat model. The default is gpt-4o-mini.
func WithOpenAIModel(model string) OpenAIOption {
	return func(o *OpenAI) { o.model = model }
}

// WithOpenAIBaseURL points the client at a compatible endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(o *OpenAI) { o.opts = append(o.opts, option.WithBaseURL(url)) }
}

// WithOpenAIHTTPClient sets a custom HTTP client.
func WithOpenAIHTTPClient(client *http.Client) OpenAIOption {
	return func(o *OpenAI) {
		if client != nil {
			o.opts = append(o.opts, option.WithHTTPClient(client))
		}
	}
}

// WithOpenAIMaxRetries sets how often the client retries failed calls.
// Retries happen inside the rule's call timeout.
func WithOpenAIMaxRetries(n int) OpenAIOption {
	return func(o *OpenAI) { o.opts = append(o.opts, option.WithMaxRetries(n)) }
}

// NewOpenAI creates an OpenAI classifier.
func NewOpenAI(apiKey string, opts ...OpenAIOption) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrInvalidAPIKey
	}
	o := &OpenAI{
		model: openai.ChatModelGPT4oMini,
		opts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
	for _, opt := range opts {
		opt(o)
	}
	o.client = openai.NewClient(o.opts...)
	return o, nil
}

// Identify implements [fieldschema.Classifier].
func (o *OpenAI) Identify(ctx context.Context, text string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(truncate(text)),
		},
		Temperature:         openai.Float(0),
		MaxCompletionTokens: openai.Int(8),
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.Join(ErrNoAnswer, errors.New("openai: empty choices"))
	}
	return parseAnswer(resp.Choices[0].Message.Content)
}
