package factcheck

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/truthlens/truthlens-backend/src/ai/core"
	"github.com/truthlens/truthlens-backend/src/logging"
	"github.com/truthlens/truthlens-backend/src/search"
	"github.com/truthlens/truthlens-backend/src/workers"
)

// Service runs the extract, search and synthesize pipeline for one post.
type Service struct {
	extractor   *Extractor
	searcher    *Searcher
	synthesizer *Synthesizer
	pool        *workers.Pool
}

// NewService wires the three stages onto one shared worker pool.
func NewService(llm core.Client, engine search.Engine, pool *workers.Pool, opts core.Options) *Service {
	return &Service{
		extractor:   NewExtractor(llm, pool, opts),
		searcher:    NewSearcher(engine, pool),
		synthesizer: NewSynthesizer(llm, pool, opts),
		pool:        pool,
	}
}

// Check fact-checks text. Empty input, a claim-free post and a search without
// hits all return an Unverifiable response and skip the remaining stages.
// Extraction and search failures come back as *StageError.
func (s *Service) Check(ctx context.Context, text string) (Response, error) {
	start := time.Now()
	text = strings.TrimSpace(text)
	logger := logging.FromContext(ctx).With("text_fp", Fingerprint(text), "text_len", len(text))

	if text == "" {
		logger.Info("fact-check skipped", "reason", "empty text")
		return unverifiable(explainEmptyText), nil
	}

	claim, err := s.extractor.Extract(ctx, text)
	switch {
	case errors.Is(err, ErrNoClaim):
		logger.Info("fact-check finished", "reason", "no claim", "elapsed", time.Since(start))
		return unverifiable(explainNoClaim), nil
	case err != nil:
		logger.Error("claim extraction failed", "rate_limited", logging.IsRateLimit(err), "err", err)
		return Response{}, &StageError{Stage: StageExtract, Err: err}
	}

	results, err := s.searcher.Search(ctx, claim)
	if err != nil {
		logger.Error("source search failed", "rate_limited", logging.IsRateLimit(err), "err", err)
		return Response{}, &StageError{Stage: StageSearch, Err: err}
	}
	if len(results) == 0 {
		logger.Info("fact-check finished", "reason", "no sources", "elapsed", time.Since(start))
		return unverifiable(explainNoSources), nil
	}

	resp := s.synthesizer.Synthesize(logging.WithContext(ctx, logger), claim, text, results)
	logger.Info("fact-check finished",
		"label", resp.Label,
		"confidence", resp.Confidence,
		"sources", len(resp.Sources),
		"elapsed", time.Since(start),
		"workers_busy", s.pool.Active(),
	)
	return resp, nil
}
