package factcheck

import (
	"context"
	"fmt"

	"github.com/truthlens/truthlens-backend/src/search"
	"github.com/truthlens/truthlens-backend/src/workers"
)

const (
	searchResultCount   = 3
	searchMaxCharacters = 500
)

// TrustedDomains is the allow-list every source search is restricted to.
var TrustedDomains = []string{
	"reuters.com",
	"apnews.com",
	"bbc.com",
	"snopes.com",
	"factcheck.org",
	"politifact.com",
	"npr.org",
}

// Searcher looks up corroborating coverage for a claim.
type Searcher struct {
	engine search.Engine
	pool   *workers.Pool
}

func NewSearcher(engine search.Engine, pool *workers.Pool) *Searcher {
	return &Searcher{engine: engine, pool: pool}
}

// Search returns up to three hits from the trusted domains. An empty slice
// with a nil error means the search succeeded and found nothing.
func (s *Searcher) Search(ctx context.Context, claim string) ([]search.Result, error) {
	domains := make([]string, len(TrustedDomains))
	copy(domains, TrustedDomains)

	q := search.Query{
		Text:           claim,
		NumResults:     searchResultCount,
		MaxCharacters:  searchMaxCharacters,
		IncludeDomains: domains,
		UseAutoprompt:  true,
	}

	results, err := workers.Submit(ctx, s.pool, func(ctx context.Context) ([]search.Result, error) {
		return s.engine.Search(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.engine.Name(), err)
	}
	if results == nil {
		results = []search.Result{}
	}
	return results, nil
}
