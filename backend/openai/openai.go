// Package openai provides an ExecutionBackend backed by the OpenAI Chat
// Completions API. It adapts the task's instructions/input into chat
// messages and surfaces token usage in the output metadata.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/formforge/formforge/core"
)

// Options configure the OpenAI backend. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Backend wraps the OpenAI Chat Completions API behind core.ExecutionBackend.
type Backend struct {
	client *openai.Client
	opts   Options
}

// New creates a Backend using the official client configured from the
// environment (OPENAI_API_KEY).
func New(optFns ...func(o *Options)) *Backend {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a Backend from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Backend {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.2,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Backend{client: client, opts: opts}
}

// Run implements core.ExecutionBackend.
func (b *Backend) Run(ctx context.Context, instructions string, input core.TaskInput) (*core.TaskOutput, error) {
	params := openai.ChatCompletionNewParams{
		Model: b.opts.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessage(input.Text),
		},
		Temperature:         openai.Float(b.opts.Temperature),
		MaxCompletionTokens: openai.Int(b.opts.MaxCompletionTokens),
	}

	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api error: no choices returned")
	}

	return &core.TaskOutput{
		Text: resp.Choices[0].Message.Content,
		Raw:  resp,
		Metadata: map[string]any{
			"model":                    resp.Model,
			core.MetaPromptTokens:     resp.Usage.PromptTokens,
			core.MetaCompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// Info implements core.ExecutionBackend.
func (b *Backend) Info() core.BackendInfo {
	return core.BackendInfo{Name: b.opts.Model, Provider: "openai"}
}
