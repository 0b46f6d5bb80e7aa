package monitor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mikey/frozen-screen-detector/internal/adapters/cache"
	"github.com/mikey/frozen-screen-detector/internal/adapters/monitor"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/urlcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type frozenAnalyzer struct {
	calls int
}

func (a *frozenAnalyzer) Analyze(ctx context.Context, url string) *core.DetectionResult {
	a.calls++
	return &core.DetectionResult{
		URL:             url,
		IsFrozen:        true,
		Reason:          "too few changed frames (1), likely frozen",
		Category:        core.CategoryFrozenSparseFrames,
		FramesExtracted: 1,
		Elapsed:         1200 * time.Millisecond,
		CheckedAt:       time.Now(),
		ProcessingID:    "test-probe",
	}
}

func newTestMonitor(analyzer core.StreamAnalyzer) *monitor.HTTPMonitor {
	logger := zap.NewNop()
	service := core.NewFreezeDetectionService(
		analyzer,
		cache.NewMemoryCache(10, logger),
		urlcheck.NewClassifier(logger),
		logger,
		true,
	)
	return monitor.NewHTTPMonitor(service, logger, "127.0.0.1:0")
}

func TestHealthz(t *testing.T) {
	m := newTestMonitor(&frozenAnalyzer{})
	rr := httptest.NewRecorder()

	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCheckQueryRequiresURL(t *testing.T) {
	m := newTestMonitor(&frozenAnalyzer{})
	rr := httptest.NewRecorder()

	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/check", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckQueryFilteredURL(t *testing.T) {
	analyzer := &frozenAnalyzer{}
	m := newTestMonitor(analyzer)
	rr := httptest.NewRecorder()

	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/check?url=ftp%3A%2F%2Fexample.com%2Fvideo.mp4", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["is_frozen"])
	assert.Equal(t, "filtered", resp["category"])
	assert.Equal(t, "not a video stream URL", resp["reason"])
	assert.Equal(t, 0, analyzer.calls)
}

func TestCheckBodyFrozenStream(t *testing.T) {
	m := newTestMonitor(&frozenAnalyzer{})
	rr := httptest.NewRecorder()

	body := strings.NewReader(`{"url": "http://example.com/live.m3u8"}`)
	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/check", body))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_frozen"])
	assert.Equal(t, string(core.CategoryFrozenSparseFrames), resp["category"])
	assert.Contains(t, resp["reason"], "too few changed frames")
}

func TestCheckBodyRejectsInvalidJSON(t *testing.T) {
	m := newTestMonitor(&frozenAnalyzer{})
	rr := httptest.NewRecorder()

	m.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/check", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestClearCache(t *testing.T) {
	analyzer := &frozenAnalyzer{}
	m := newTestMonitor(analyzer)
	router := m.Router()
	url := "/check?url=http%3A%2F%2Fexample.com%2Flive.m3u8"

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, url, nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, 1, analyzer.calls, "second check should be cached")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/cache", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, 2, analyzer.calls, "cleared cache should trigger a fresh probe")
}
