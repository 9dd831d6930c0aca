package factcheck

import (
	"context"
	"fmt"
	"strings"

	"github.com/truthlens/truthlens-backend/src/ai/core"
	"github.com/truthlens/truthlens-backend/src/logging"
	"github.com/truthlens/truthlens-backend/src/search"
	"github.com/truthlens/truthlens-backend/src/workers"
)

const (
	maxPromptSources   = 5
	maxPromptContent   = 500
	maxResponseSources = 3
	maxSnippet         = 200
)

const synthesizePrompt = `Analyze this claim against these sources. Determine: TRUE, FALSE, MISLEADING, or UNVERIFIABLE.

Claim: "%s"

Sources:
%s

Format:
LABEL: [TRUE/FALSE/MISLEADING/UNVERIFIABLE]
EXPLANATION: [1-2 sentences]
CONFIDENCE: [0.0-1.0]`

// Synthesizer turns a claim and its sources into a verdict.
type Synthesizer struct {
	llm  core.Client
	pool *workers.Pool
	opts core.Options
}

func NewSynthesizer(llm core.Client, pool *workers.Pool, opts core.Options) *Synthesizer {
	return &Synthesizer{llm: llm, pool: pool, opts: opts}
}

// Synthesize asks the model for a verdict on claim. A provider failure yields
// the Error verdict rather than an error value.
func (s *Synthesizer) Synthesize(ctx context.Context, claim, original string, results []search.Result) Response {
	logger := logging.FromContext(ctx)
	prompt := fmt.Sprintf(synthesizePrompt, claim, formatSources(results))

	reply, err := workers.Submit(ctx, s.pool, func(ctx context.Context) (string, error) {
		return s.llm.Respond(ctx, prompt, s.opts)
	})
	if err != nil {
		logger.Error("verdict synthesis failed",
			"stage", StageSynthesis,
			"text_fp", Fingerprint(original),
			"rate_limited", logging.IsRateLimit(err),
			"err", err,
		)
		return Response{
			Label:       LabelError,
			Explanation: explainSynthesisError,
			Sources:     []Source{},
			Confidence:  0.0,
		}
	}

	verdict := ParseVerdict(reply)
	if len(verdict.Repeated) > 0 {
		logger.Warn("verdict reply repeated fields, kept last", "fields", verdict.Repeated)
	}

	return Response{
		Label:       verdict.Label,
		Explanation: verdict.Explanation,
		Sources:     topSources(results),
		Confidence:  verdict.Confidence,
	}
}

func formatSources(results []search.Result) string {
	if len(results) > maxPromptSources {
		results = results[:maxPromptSources]
	}
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf("Source %d:\nTitle: %s\nURL: %s\nContent: %s",
			i+1,
			orNA(r.Title),
			orNA(r.URL),
			orNA(TruncateRunes(r.Content, maxPromptContent)),
		))
	}
	return strings.Join(blocks, "\n\n")
}

func topSources(results []search.Result) []Source {
	if len(results) > maxResponseSources {
		results = results[:maxResponseSources]
	}
	sources := make([]Source, 0, len(results))
	for _, r := range results {
		title := r.Title
		if strings.TrimSpace(title) == "" {
			title = "Source"
		}
		snippet := TruncateRunes(r.Content, maxSnippet)
		sources = append(sources, Source{
			Title:   title,
			URL:     r.URL,
			Snippet: &snippet,
		})
	}
	return sources
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
