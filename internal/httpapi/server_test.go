package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/config"
	"textsum/internal/logging"
	"textsum/internal/metrics"
	"textsum/internal/service"
)

const catsText = "Cats are great pets. Dogs are loyal too. Cats and dogs can be friends. Some people prefer fish as pets."

type httpCall struct {
	method string
	path   string
	status int
}

type fakeRecorder struct {
	metrics.Noop
	mu    sync.Mutex
	calls []httpCall
}

func (f *fakeRecorder) RecordHTTP(method, path string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, httpCall{method: method, path: path, status: status})
}

type panicSummarizer struct{}

func (panicSummarizer) Summarize(context.Context, service.Request) (*service.Response, error) {
	panic("boom")
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	cfg.Server.RateLimit = 0
	return cfg
}

func newTestServer(t *testing.T, cfg *config.AppConfig, logger *slog.Logger, rec metrics.Recorder) *Server {
	t.Helper()
	svc, err := service.FromConfig(cfg, logger, nil)
	require.NoError(t, err)
	return New(cfg.Server, cfg.Summarizer, svc, logger, rec)
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestSummarize_JSON(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	body, _ := json.Marshal(map[string]any{"text": catsText, "sentences": "2", "style": "plain"})
	rr := postJSON(t, srv.Handler(), string(body))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	out := decode(t, rr)
	assert.Equal(t, "Cats are great pets. Cats and dogs can be friends.", out["summary"])
	assert.Equal(t, map[string]any{
		"sentence_count":         float64(4),
		"word_count":             float64(24),
		"avg_words_per_sentence": float64(6),
	}, out["stats"])
	dl, ok := out["download"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "summary.txt", dl["filename"])
	assert.True(t, strings.HasPrefix(dl["data_uri"].(string), "data:file/txt;base64,"))
}

func TestSummarize_SentenceCountForms(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	tests := []struct {
		name      string
		sentences string
		want      string
	}{
		{name: "number", sentences: `1`, want: "Cats are great pets."},
		{name: "string", sentences: `"1"`, want: "Cats are great pets."},
		{name: "negative clamps to one", sentences: `-3`, want: "Cats are great pets."},
		{name: "fraction uses default", sentences: `2.5`, want: catsText},
		{name: "garbage uses default", sentences: `"lots"`, want: catsText},
		{name: "null uses config default", sentences: `null`, want: catsText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, srv.Handler(), `{"text":"`+catsText+`","sentences":`+tt.sentences+`}`)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.Equal(t, tt.want, decode(t, rr)["summary"])
		})
	}
}

func TestSummarize_Errors(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{name: "empty text", body: `{"text":"","sentences":3}`, code: http.StatusBadRequest, message: "Please provide some text"},
		{name: "blank text", body: `{"text":"  \n "}`, code: http.StatusBadRequest, message: "Please provide some text"},
		{name: "invalid style", body: `{"text":"One. Two.","style":"fancy"}`, code: http.StatusBadRequest, message: "invalid summary style"},
		{name: "malformed json", body: `{"text":`, code: http.StatusBadRequest, message: "invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, srv.Handler(), tt.body)
			assert.Equal(t, tt.code, rr.Code)
			assert.Contains(t, decode(t, rr)["error"], tt.message)
		})
	}
}

func TestSummarize_BodyTooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.MaxBodyBytes = 64
	srv := newTestServer(t, cfg, nil, nil)

	rr := postJSON(t, srv.Handler(), `{"text":"`+strings.Repeat("Long sentence here. ", 20)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestSummarize_Bullets(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	rr := postJSON(t, srv.Handler(), `{"text":"`+catsText+`","sentences":2,"style":"bullets"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "\n• Cats are great pets.\n\n• Cats and dogs can be friends.", decode(t, rr)["summary"])
}

func upload(t *testing.T, h http.Handler, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestUpload(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	t.Run("text file", func(t *testing.T) {
		rr := upload(t, srv.Handler(), "cats.txt", catsText, map[string]string{"sentences": "1", "style": "numbered"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "\n1. Cats are great pets.", decode(t, rr)["summary"])
	})

	t.Run("html file", func(t *testing.T) {
		rr := upload(t, srv.Handler(), "cats.html", "<p>"+catsText+"</p>", map[string]string{"sentences": "2"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "Cats are great pets. Cats and dogs can be friends.", decode(t, rr)["summary"])
	})

	t.Run("unsupported format", func(t *testing.T) {
		rr := upload(t, srv.Handler(), "cats.pdf", "%PDF", nil)
		assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
	})

	t.Run("empty file", func(t *testing.T) {
		rr := upload(t, srv.Handler(), "empty.txt", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Please provide some text", decode(t, rr)["error"])
	})

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("sentences", "2"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode(t, rr)["status"])
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/summarize", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, nil)

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
	})

	t.Run("generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		_, err := uuid.Parse(rr.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})
}

func TestRequestIDReachesServiceLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "text", "debug")
	srv := newTestServer(t, testConfig(t), logger, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(`{"text":"`+catsText+`"}`))
	req.Header.Set(RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var generated, completed bool
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "summary generated") {
			generated = strings.Contains(line, "request_id=req-42")
		}
		if strings.Contains(line, "request completed") {
			completed = strings.Contains(line, "request_id=req-42") && strings.Contains(line, "status=200")
		}
	}
	assert.True(t, generated, buf.String())
	assert.True(t, completed, buf.String())
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateBurst = 1
	srv := newTestServer(t, cfg, nil, nil)

	first := httptest.NewRecorder()
	srv.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	second := httptest.NewRecorder()
	srv.Handler().ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
}

func TestInstrumentRecordsRoutePattern(t *testing.T) {
	rec := &fakeRecorder{}
	srv := newTestServer(t, testConfig(t), nil, rec)

	postJSON(t, srv.Handler(), `{"text":"`+catsText+`"}`)
	postJSON(t, srv.Handler(), `{"text":""}`)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []httpCall{
		{method: http.MethodPost, path: "/api/v1/summarize", status: http.StatusOK},
		{method: http.MethodPost, path: "/api/v1/summarize", status: http.StatusBadRequest},
		{method: http.MethodGet, path: "unmatched", status: http.StatusNotFound},
	}, rec.calls)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig(t), nil, metrics.NewPrometheus())

	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "textsum_http_requests_total")
}

func TestRecoverFromPanic(t *testing.T) {
	cfg := testConfig(t)
	srv := New(cfg.Server, cfg.Summarizer, panicSummarizer{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summarize", strings.NewReader(`{"text":"One. Two."}`))
	req.Header.Set(RequestIDHeader, "panic-1")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	out := decode(t, rr)
	assert.Equal(t, "internal server error", out["error"])
	assert.Equal(t, "panic-1", out["request_id"])
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Addr = "127.0.0.1:0"
	srv := newTestServer(t, cfg, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
