package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type echoClient struct {
	name string
	cfg  FactoryConfig
}

func (c *echoClient) Name() string { return c.name }

func (c *echoClient) Respond(ctx context.Context, input string, opts Options) (string, error) {
	return input, nil
}

func TestNewClientUsesRegisteredFactory(t *testing.T) {
	RegisterProvider("echo-test", func(cfg FactoryConfig) (Client, error) {
		return &echoClient{name: "echo-test", cfg: cfg}, nil
	}, "Echo-Alias")

	client, err := NewClient(FactoryConfig{Provider: "ECHO-ALIAS", Model: "m1"})
	require.NoError(t, err)
	require.Equal(t, "echo-test", client.Name())
	require.Equal(t, "m1", client.(*echoClient).cfg.Model)

	reply, err := client.Respond(context.Background(), "ping", Options{})
	require.NoError(t, err)
	require.Equal(t, "ping", reply)

	require.Contains(t, Registered(), "echo-test")
	require.NotContains(t, Registered(), "echo-alias")
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(FactoryConfig{Provider: "nope"})
	require.EqualError(t, err, `ai: provider "nope" not registered`)
}

func TestResolveModelName(t *testing.T) {
	require.Equal(t, "gemini-3-flash-preview", ResolveModelName("Gemini", ""))
	require.Equal(t, "gpt-4o", ResolveModelName("openai", "  "))
	require.Equal(t, "custom", ResolveModelName("openai", "custom"))
	require.Equal(t, "unknown", ResolveModelName("other", ""))
}

func TestMerge(t *testing.T) {
	base := Options{Model: "a", Temperature: 0.2, MaxCompletionTokens: 100, SystemPrompt: "sys"}

	require.Equal(t, base, Merge(base, Options{}))
	require.Equal(t,
		Options{Model: "b", Temperature: 0.7, MaxCompletionTokens: 100, SystemPrompt: "other"},
		Merge(base, Options{Model: "b", Temperature: 0.7, SystemPrompt: "other"}),
	)
}
