package factcheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/truthlens/truthlens-backend/src/ai/core"
	"github.com/truthlens/truthlens-backend/src/workers"
)

// NoClaimReply is what the model is told to answer when nothing is verifiable.
const NoClaimReply = "No verifiable claim"

const extractPrompt = `Extract the main verifiable claim from this tweet. If no verifiable claim exists, respond "No verifiable claim".

Tweet: "%s"

Claim (max 2 sentences):`

// Extractor asks the model for the single checkable claim in a post.
type Extractor struct {
	llm  core.Client
	pool *workers.Pool
	opts core.Options
}

func NewExtractor(llm core.Client, pool *workers.Pool, opts core.Options) *Extractor {
	return &Extractor{llm: llm, pool: pool, opts: opts}
}

// Extract returns the trimmed claim, ErrNoClaim when the model found none, or
// the provider error.
func (e *Extractor) Extract(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(extractPrompt, text)

	reply, err := workers.Submit(ctx, e.pool, func(ctx context.Context) (string, error) {
		return e.llm.Respond(ctx, prompt, e.opts)
	})
	if err != nil {
		return "", fmt.Errorf("extract claim: %w", err)
	}

	claim := strings.TrimSpace(reply)
	if isNoClaim(claim) {
		return "", ErrNoClaim
	}
	return claim, nil
}

func isNoClaim(claim string) bool {
	normalized := strings.Trim(claim, "\"'. \t\r\n")
	return normalized == "" || strings.EqualFold(normalized, NoClaimReply)
}
