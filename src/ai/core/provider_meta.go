package core

import (
	"strings"
)

var providerDefaultModels = map[string]string{
	"gemini": "gemini-3-flash-preview",
	"openai": "gpt-4o",
}

// DefaultModelForProvider returns the baked-in default model for a provider key.
func DefaultModelForProvider(provider string) string {
	key := strings.ToLower(strings.TrimSpace(provider))
	if val, ok := providerDefaultModels[key]; ok {
		return val
	}
	return ""
}

// ResolveModelName picks the configured model if provided, otherwise the provider's default.
func ResolveModelName(provider, configuredModel string) string {
	model := strings.TrimSpace(configuredModel)
	if model != "" {
		return model
	}
	if def := DefaultModelForProvider(provider); def != "" {
		return def
	}
	return "unknown"
}

// Merge overlays the non-zero fields of override onto base.
func Merge(base, override Options) Options {
	out := base
	if strings.TrimSpace(override.Model) != "" {
		out.Model = override.Model
	}
	if override.Temperature != 0 {
		out.Temperature = override.Temperature
	}
	if override.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = override.MaxCompletionTokens
	}
	if strings.TrimSpace(override.SystemPrompt) != "" {
		out.SystemPrompt = override.SystemPrompt
	}
	return out
}
