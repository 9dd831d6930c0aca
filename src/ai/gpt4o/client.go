package gpt4o

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/truthlens/truthlens-backend/src/ai/core"
	"github.com/truthlens/truthlens-backend/src/webclient"
)

const (
	providerName     = "openai"
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultModelName = "gpt-4o"
	defaultMaxTokens = 2048
	defaultTimeout   = 60 * time.Second
)

func init() {
	core.RegisterProvider(providerName, newClient, "gpt4o")
}

type client struct {
	sdk      openai.Client
	defaults core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	apiKey := strings.TrimSpace(cfg.OpenAIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gpt4o: OpenAI API key not configured")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	sdk := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(webclient.NewDefault(timeout)),
	)

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModelName
	}

	return &client{
		sdk: sdk,
		defaults: core.Options{
			Model:               model,
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}, nil
}

func (c *client) Name() string {
	return providerName
}

func (c *client) Respond(ctx context.Context, input string, opts core.Options) (string, error) {
	merged := core.Merge(c.defaults, opts)

	resp, err := c.sdk.Chat.Completions.New(ctx, buildParams(merged, input))
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: %w", core.ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func buildParams(opts core.Options, input string) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(opts.SystemPrompt) != "" {
		messages = append(messages, openai.SystemMessage(opts.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(input))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(opts.Model),
		Messages: messages,
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxCompletionTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxCompletionTokens))
	}
	return params
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

var _ core.Client = (*client)(nil)
