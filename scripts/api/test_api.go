// Minimal end-to-end check against a running TruthLens API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

var (
	baseURL  = getenv("API_URL", "http://localhost:8000")
	liveText = os.Getenv("LIVE_TEXT") // set to run one real fact-check through the providers
)

type factCheck struct {
	Label       string  `json:"label"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
	Sources     []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Snippet *string `json:"snippet"`
	} `json:"sources"`
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	checkRoot()
	checkHealth()
	checkEmptyText()
	checkMissingText()
	if liveText != "" {
		checkLive(liveText)
	}

	fmt.Println("✓ all endpoints passed")
}

// ----------------------------- meta

func checkRoot() {
	var resp struct{ Message, Version string }
	doJSON("GET", "/", nil, &resp, http.StatusOK)
	if resp.Message == "" || resp.Version == "" {
		log.Fatal("root: missing message or version")
	}
}

func checkHealth() {
	var resp struct{ Status string }
	doJSON("GET", "/health", nil, &resp, http.StatusOK)
	if resp.Status != "healthy" {
		log.Fatalf("health: got %q", resp.Status)
	}
}

// ----------------------------- fact-check

func checkEmptyText() {
	var resp factCheck
	doJSON("POST", "/api/fact-check", map[string]any{"text": "   "}, &resp, http.StatusOK)
	if resp.Label != "Unverifiable" || resp.Confidence != 0 || len(resp.Sources) != 0 {
		log.Fatalf("empty text: unexpected %+v", resp)
	}
}

func checkMissingText() {
	var resp struct{ Detail string }
	doJSON("POST", "/api/fact-check", map[string]any{}, &resp, http.StatusUnprocessableEntity)
	if resp.Detail == "" {
		log.Fatal("missing text: empty detail")
	}
}

func checkLive(text string) {
	var resp factCheck
	doJSON("POST", "/api/fact-check", map[string]any{"text": text}, &resp, http.StatusOK)
	if resp.Label == "" || resp.Confidence < 0 || resp.Confidence > 1 || len(resp.Sources) > 3 {
		log.Fatalf("live: malformed response %+v", resp)
	}
	fmt.Printf("live: %s (%.2f) %s\n", resp.Label, resp.Confidence, resp.Explanation)
}

// ----------------------------- helpers

func doJSON(method, path string, body, out any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			log.Fatalf("%s %s encode: %v", method, path, err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, method, baseURL+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != want {
		log.Fatalf("%s %s: want %d got %d", method, path, want, res.StatusCode)
	}
	if got := res.Header.Get("X-Request-ID"); got != reqID {
		log.Fatalf("%s %s: request id not echoed (got %q)", method, path, got)
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			log.Fatalf("%s %s decode: %v", method, path, err)
		}
	}
}
