package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/truthlens/truthlens-backend/src/ai/core"
)

const (
	providerName     = "gemini"
	defaultModelName = "gemini-3-flash-preview"
	defaultMaxTokens = 2048
	defaultTimeout   = 60 * time.Second
)

func init() {
	core.RegisterProvider(providerName, newClient, "google")
}

type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

type client struct {
	models   modelsClient
	defaults core.Options
	timeout  time.Duration
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	apiKey := strings.TrimSpace(cfg.GeminiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	sdk, err := newGenAIClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return newWithModels(sdk.Models, cfg), nil
}

func newWithModels(models modelsClient, cfg core.FactoryConfig) *client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModelName
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		models: models,
		defaults: core.Options{
			Model:               model,
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
		timeout: timeout,
	}
}

func (c *client) Name() string {
	return providerName
}

func (c *client) Respond(ctx context.Context, input string, opts core.Options) (string, error) {
	merged := core.Merge(c.defaults, opts)

	callCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.models.GenerateContent(callCtx, merged.Model, genai.Text(input), buildConfig(merged))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text := extractVisibleText(resp)
	if strings.TrimSpace(text) == "" {
		if reason := finishReason(resp); reason != "" && reason != genai.FinishReasonStop {
			return "", fmt.Errorf("gemini: %w (finish reason %s)", core.ErrEmptyResponse, reason)
		}
		return "", fmt.Errorf("gemini: %w", core.ErrEmptyResponse)
	}
	return text, nil
}

func buildConfig(opts core.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if opts.Temperature != 0 {
		cfg.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxCompletionTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxCompletionTokens)
	}
	if strings.TrimSpace(opts.SystemPrompt) != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: opts.SystemPrompt}},
		}
	}
	return cfg
}

func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// extractVisibleText joins the non-thought text parts of the first candidate.
func extractVisibleText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func finishReason(resp *genai.GenerateContentResponse) genai.FinishReason {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	return resp.Candidates[0].FinishReason
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

var _ core.Client = (*client)(nil)
