package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"
	"unicode"

	aicore "github.com/truthlens/truthlens-backend/src/ai/core"
	_ "github.com/truthlens/truthlens-backend/src/ai/providers"
	"github.com/truthlens/truthlens-backend/src/config"
	"github.com/truthlens/truthlens-backend/src/factcheck"
	"github.com/truthlens/truthlens-backend/src/search/exa"
	"github.com/truthlens/truthlens-backend/src/webclient"
	"github.com/truthlens/truthlens-backend/src/workers"
)

var (
	providersFlag = flag.String("providers", "gemini", "Comma-separated provider list or 'all'")
	modeFlag      = flag.String("mode", "respond", "respond|search|check|all")
	modelFlag     = flag.String("model", "", "Override model name")
	promptFlag    = flag.String("prompt", defaultPrompt, "User prompt for respond mode")
	queryFlag     = flag.String("query", defaultQuery, "Query for search mode")
	textFlag      = flag.String("text", defaultText, "Post text for check mode")
	timeoutFlag   = flag.Duration("timeout", 90*time.Second, "Per-provider timeout")
	tempFlag      = flag.Float64("temp", 0, "Completion temperature")
	maxLenFlag    = flag.Int("max-chars", 1200, "Maximum characters of output to print per response (0=unlimited)")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	mode, err := parseMode(*modeFlag)
	if err != nil {
		log.Fatalf("invalid mode: %v", err)
	}

	cfg := config.FromEnv()

	if mode.has(modeSearch) {
		if err := executeSearchTest(cfg); err != nil {
			fmt.Printf("search ❌ %v\n", err)
		}
	}
	if !mode.has(modeRespond) && !mode.has(modeCheck) {
		return
	}

	providers := resolveProviders(*providersFlag)
	if len(providers) == 0 {
		log.Fatal("no providers specified")
	}
	for _, provider := range providers {
		if err := runProvider(provider, mode, cfg); err != nil {
			log.Printf("[%s] ERROR: %v", provider, err)
		}
	}
}

func runProvider(provider string, mode runMode, cfg config.Config) error {
	model := aicore.ResolveModelName(provider, firstNonBlank(*modelFlag, cfg.AIModel))
	fc := aicore.FactoryConfig{
		Provider:    provider,
		Model:       model,
		Temperature: *tempFlag,
		Timeout:     *timeoutFlag,
		GeminiKey:   cfg.GeminiKey,
		OpenAIKey:   cfg.OpenAIKey,
	}
	if provider == "openai" {
		fc.BaseURL = cfg.OpenAIBaseURL
	}

	client, err := aicore.NewClient(fc)
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}

	fmt.Printf("=== %s (%s) ===\n", provider, model)
	if mode.has(modeRespond) {
		if err := executeRespondTest(client, model); err != nil {
			fmt.Printf("respond ❌ %v\n", err)
		}
	}
	if mode.has(modeCheck) {
		if err := executeCheckTest(client, model, cfg); err != nil {
			fmt.Printf("check ❌ %v\n", err)
		}
	}
	return nil
}

func executeRespondTest(client aicore.Client, model string) error {
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	start := time.Now()
	reply, err := client.Respond(ctx, *promptFlag, aicore.Options{Model: model, Temperature: *tempFlag})
	if err != nil {
		return err
	}
	fmt.Printf("respond ✅ (%.1fs)\n%s\n", time.Since(start).Seconds(), truncate(reply, *maxLenFlag))
	return nil
}

func executeSearchTest(cfg config.Config) error {
	if strings.TrimSpace(cfg.ExaKey) == "" {
		return errors.New("EXA_API_KEY is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	pool := workers.NewPool(1, nil)
	pool.Start()
	defer pool.Stop()

	searcher := factcheck.NewSearcher(newEngine(cfg), pool)
	start := time.Now()
	results, err := searcher.Search(ctx, *queryFlag)
	if err != nil {
		return err
	}
	fmt.Printf("search ✅ (%.1fs) %d result(s)\n", time.Since(start).Seconds(), len(results))
	for i, r := range results {
		fmt.Printf("%d. %s\n   %s\n   %s\n", i+1, r.Title, r.URL, truncate(r.Content, 200))
	}
	return nil
}

func executeCheckTest(client aicore.Client, model string, cfg config.Config) error {
	if strings.TrimSpace(cfg.ExaKey) == "" {
		return errors.New("EXA_API_KEY is not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	pool := workers.NewPool(cfg.WorkerCount, nil)
	pool.Start()
	defer pool.Stop()

	svc := factcheck.NewService(client, newEngine(cfg), pool, aicore.Options{Model: model, Temperature: *tempFlag})
	start := time.Now()
	resp, err := svc.Check(ctx, *textFlag)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("check ✅ (%.1fs)\n%s\n", time.Since(start).Seconds(), truncate(string(out), *maxLenFlag))
	return nil
}

func newEngine(cfg config.Config) *exa.Client {
	return exa.NewClient(cfg.ExaKey,
		exa.WithEndpoint(cfg.ExaEndpoint),
		exa.WithHTTPClient(webclient.NewDefault(cfg.SearchTimeout)),
		exa.WithRetry(cfg.SearchRetries, time.Second),
	)
}

// resolveProviders expands "all" to every registered backend and otherwise
// keeps the listed names in order, lowercased and deduplicated.
func resolveProviders(raw string) []string {
	if strings.EqualFold(strings.TrimSpace(raw), "all") {
		return aicore.Registered()
	}
	var out []string
	for _, name := range strings.FieldsFunc(strings.ToLower(raw), isListSeparator) {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

func isListSeparator(r rune) bool {
	return r == ',' || r == ';' || unicode.IsSpace(r)
}

func firstNonBlank(values ...string) string {
	if i := slices.IndexFunc(values, func(v string) bool { return strings.TrimSpace(v) != "" }); i >= 0 {
		return values[i]
	}
	return ""
}

func parseMode(input string) (runMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "respond":
		return modeRespond, nil
	case "search":
		return modeSearch, nil
	case "check":
		return modeCheck, nil
	case "all":
		return modeRespond | modeSearch | modeCheck, nil
	default:
		return modeRespond, errors.New("expected respond, search, check, or all")
	}
}

func truncate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 {
		return text
	}
	if cut := factcheck.TruncateRunes(text, limit); cut != text {
		return strings.TrimSpace(cut) + "...(truncated)"
	}
	return text
}

type runMode int

const (
	modeRespond runMode = 1 << iota
	modeSearch
	modeCheck
)

func (m runMode) has(flag runMode) bool {
	return m&flag != 0
}

const (
	defaultPrompt = "In one sentence, state the boiling point of water at sea level."
	defaultQuery  = "Great Wall of China visible from space"
	defaultText   = "The Great Wall of China is the only man-made structure visible from space with the naked eye."
)
