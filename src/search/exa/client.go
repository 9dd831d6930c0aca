package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/truthlens/truthlens-backend/src/logging"
	"github.com/truthlens/truthlens-backend/src/search"
	"github.com/truthlens/truthlens-backend/src/webclient"
)

const (
	defaultEndpoint = "https://api.exa.ai"
	searchPath      = "/search"
	engineName      = "exa"
	// errorBodyLimit caps how much of an error response ends up in the error text.
	errorBodyLimit = 512
)

// Page text and titles can carry scraped markup.
var markupPolicy = bluemonday.StrictPolicy()

// Option configures the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used to talk to Exa.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithEndpoint overrides the Exa base URL, primarily for testing.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(endpoint), "/"); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithRetry sets how many attempts are made for transient failures and the
// delay before the first retry.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// Client queries Exa's search endpoint and converts hits into search results.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	attempts   int
	retryDelay time.Duration
}

// NewClient constructs an Exa-backed engine. The apiKey must be non-empty at
// search time.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		endpoint:   defaultEndpoint,
		httpClient: webclient.NewDefault(30 * time.Second),
		attempts:   1,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Name returns the identifier used in logs.
func (c *Client) Name() string {
	return engineName
}

type searchRequest struct {
	Query          string         `json:"query"`
	NumResults     int            `json:"numResults,omitempty"`
	UseAutoprompt  bool           `json:"useAutoprompt,omitempty"`
	IncludeDomains []string       `json:"includeDomains,omitempty"`
	Contents       *contentsParam `json:"contents,omitempty"`
}

type contentsParam struct {
	Text textParam `json:"text"`
}

type textParam struct {
	MaxCharacters int `json:"maxCharacters,omitempty"`
}

type searchResponse struct {
	Results []struct {
		Title *string `json:"title"`
		URL   string  `json:"url"`
		Text  *string `json:"text"`
	} `json:"results"`
	Error string `json:"error"`
}

// Search posts the query to Exa and maps the hits. A missing text body maps to
// an empty Content.
func (c *Client) Search(ctx context.Context, q search.Query) ([]search.Result, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, errors.New("exa: search query cannot be empty")
	}
	if c.apiKey == "" {
		return nil, errors.New("exa: api key is not configured")
	}

	payload := searchRequest{
		Query:          text,
		NumResults:     q.NumResults,
		UseAutoprompt:  q.UseAutoprompt,
		IncludeDomains: q.IncludeDomains,
	}
	if q.MaxCharacters > 0 {
		payload.Contents = &contentsParam{Text: textParam{MaxCharacters: q.MaxCharacters}}
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("exa: encode request: %w", err)
	}

	url := c.endpoint + searchPath
	logger := logging.FromContext(ctx)
	logger.Debug("outgoing search request",
		"engine", engineName,
		"url", url,
		"num_results", q.NumResults,
		"domains", len(q.IncludeDomains),
	)

	status, body, err := webclient.DoWithRetry(ctx, c.attempts, c.retryDelay, func() (int, []byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("x-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return 0, nil, err
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return resp.StatusCode, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return resp.StatusCode, b, fmt.Errorf("exa: search returned status %d: %s", resp.StatusCode, truncate(b, errorBodyLimit))
		}
		return resp.StatusCode, b, nil
	})
	if err != nil {
		return nil, err
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("exa: decode response (status %d): %w", status, err)
	}
	if decoded.Error != "" {
		return nil, fmt.Errorf("exa: %s", decoded.Error)
	}

	results := make([]search.Result, 0, len(decoded.Results))
	for _, hit := range decoded.Results {
		results = append(results, search.Result{
			Title:   stripMarkup(deref(hit.Title)),
			URL:     hit.URL,
			Content: stripMarkup(deref(hit.Text)),
		})
	}
	logger.Debug("search completed", "engine", engineName, "results", len(results))
	return results, nil
}

func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(html.UnescapeString(markupPolicy.Sanitize(s)))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(b []byte, limit int) string {
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}

var _ search.Engine = (*Client)(nil)
