package factcheck

import (
	"context"
	"sync"
	"testing"

	"github.com/truthlens/truthlens-backend/src/ai/core"
	"github.com/truthlens/truthlens-backend/src/search"
	"github.com/truthlens/truthlens-backend/src/workers"
)

type llmReply struct {
	text string
	err  error
}

// scriptedLLM returns its replies in order and records every prompt.
type scriptedLLM struct {
	mu      sync.Mutex
	replies []llmReply
	prompts []string
}

func (s *scriptedLLM) Name() string { return "scripted" }

func (s *scriptedLLM) Respond(ctx context.Context, input string, opts core.Options) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, input)
	if len(s.replies) == 0 {
		panic("scriptedLLM: unexpected call")
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.text, r.err
}

func (s *scriptedLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

type fakeEngine struct {
	mu      sync.Mutex
	results []search.Result
	err     error
	queries []search.Query
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Search(ctx context.Context, q search.Query) ([]search.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.results, f.err
}

func (f *fakeEngine) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func newTestPool(t *testing.T) *workers.Pool {
	t.Helper()
	p := workers.NewPool(5, nil)
	p.Start()
	t.Cleanup(p.Stop)
	return p
}

func results(n int) []search.Result {
	out := make([]search.Result, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, search.Result{
			Title:   "Title " + string(rune('A'+i)),
			URL:     "https://www.reuters.com/" + string(rune('a'+i)),
			Content: "content " + string(rune('a'+i)),
		})
	}
	return out
}
