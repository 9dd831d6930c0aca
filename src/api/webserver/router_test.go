package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthlens/truthlens-backend/src/config"
	"github.com/truthlens/truthlens-backend/src/factcheck"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type checkerFunc func(ctx context.Context, text string) (factcheck.Response, error)

func (f checkerFunc) Check(ctx context.Context, text string) (factcheck.Response, error) {
	return f(ctx, text)
}

func newTestRouter(t *testing.T, checker Checker) *gin.Engine {
	t.Helper()
	cfg := config.Config{MaxRequestBytes: 1024}
	return New(cfg, checker, nil)
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRootAndHealth(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"message": "TruthLens API is running", "version": "1.0.0"}, decode(t, rec))

	rec = do(r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "healthy"}, decode(t, rec))
}

func TestFactCheckReturnsVerdict(t *testing.T) {
	var got string
	snippet := "snippet"
	r := newTestRouter(t, checkerFunc(func(_ context.Context, text string) (factcheck.Response, error) {
		got = text
		return factcheck.Response{
			Label:       factcheck.LabelTrue,
			Explanation: "Confirmed.",
			Sources:     []factcheck.Source{{Title: "T", URL: "https://a.example", Snippet: &snippet}},
			Confidence:  0.9,
		}, nil
	}))

	rec := do(r, http.MethodPost, "/api/fact-check", `{"text":"The earth orbits the sun."}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "The earth orbits the sun.", got)

	body := decode(t, rec)
	assert.Equal(t, "True", body["label"])
	assert.Equal(t, "Confirmed.", body["explanation"])
	assert.InDelta(t, 0.9, body["confidence"], 1e-9)
	sources := body["sources"].([]any)
	require.Len(t, sources, 1)
	assert.Equal(t, "snippet", sources[0].(map[string]any)["snippet"])
}

func TestFactCheckEmptyTextIsPassedThrough(t *testing.T) {
	called := false
	r := newTestRouter(t, checkerFunc(func(_ context.Context, text string) (factcheck.Response, error) {
		called = true
		assert.Empty(t, text)
		return factcheck.Response{Label: factcheck.LabelUnverifiable, Sources: []factcheck.Source{}}, nil
	}))

	rec := do(r, http.MethodPost, "/api/fact-check", `{"text":""}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestFactCheckRejectsMissingText(t *testing.T) {
	r := newTestRouter(t, checkerFunc(func(context.Context, string) (factcheck.Response, error) {
		t.Fatal("checker must not run")
		return factcheck.Response{}, nil
	}))

	for _, body := range []string{`{}`, `{"text":null}`, `{"text":42}`, `not json`} {
		rec := do(r, http.MethodPost, "/api/fact-check", body, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
		assert.NotEmpty(t, decode(t, rec)["detail"], body)
	}
}

func TestFactCheckRejectsOversizedBody(t *testing.T) {
	r := newTestRouter(t, checkerFunc(func(context.Context, string) (factcheck.Response, error) {
		t.Fatal("checker must not run")
		return factcheck.Response{}, nil
	}))

	body := `{"text":"` + strings.Repeat("a", 2048) + `"}`
	rec := do(r, http.MethodPost, "/api/fact-check", body, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestFactCheckStageErrorIsScrubbed(t *testing.T) {
	r := newTestRouter(t, checkerFunc(func(context.Context, string) (factcheck.Response, error) {
		return factcheck.Response{}, &factcheck.StageError{
			Stage: factcheck.StageSearch,
			Err:   errors.New("exa: search returned status 401: bad key sk-123"),
		}
	}))

	rec := do(r, http.MethodPost, "/api/fact-check", `{"text":"x"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal server error: source search failed", body["detail"])
	assert.NotContains(t, rec.Body.String(), "sk-123")
}

func TestFactCheckUnexpectedError(t *testing.T) {
	r := newTestRouter(t, checkerFunc(func(context.Context, string) (factcheck.Response, error) {
		return factcheck.Response{}, errors.New("boom")
	}))

	rec := do(r, http.MethodPost, "/api/fact-check", `{"text":"x"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error: unexpected failure", decode(t, rec)["detail"])
}

func TestPanicIsRecovered(t *testing.T) {
	r := newTestRouter(t, checkerFunc(func(context.Context, string) (factcheck.Response, error) {
		panic("kaboom")
	}))

	rec := do(r, http.MethodPost, "/api/fact-check", `{"text":"x"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error: unexpected failure", decode(t, rec)["detail"])
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodGet, "/health", "", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = do(r, http.MethodGet, "/health", "", nil)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(r, http.MethodOptions, "/api/fact-check", "", map[string]string{
		"Origin":                         "https://x.com",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "Content-Type",
	})
	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	rec = do(r, http.MethodGet, "/health", "", map[string]string{"Origin": "chrome-extension://abc"})
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
