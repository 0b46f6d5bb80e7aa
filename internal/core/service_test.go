package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mikey/frozen-screen-detector/internal/adapters/cache"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/urlcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAnalyzer struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	build func(url string) *core.DetectionResult
}

func (s *stubAnalyzer) Analyze(ctx context.Context, url string) *core.DetectionResult {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.build != nil {
		return s.build(url)
	}
	return &core.DetectionResult{URL: url, Category: core.CategoryOK, CheckedAt: time.Now()}
}

func (s *stubAnalyzer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newService(analyzer core.StreamAnalyzer, capacity int, cacheEnabled bool) *core.FreezeDetectionService {
	logger := zap.NewNop()
	return core.NewFreezeDetectionService(
		analyzer,
		cache.NewMemoryCache(capacity, logger),
		urlcheck.NewClassifier(logger),
		logger,
		cacheEnabled,
	)
}

func TestCheckStreamFiltersNonVideoURLs(t *testing.T) {
	analyzer := &stubAnalyzer{}
	service := newService(analyzer, 10, true)

	result := service.CheckStream(context.Background(), "ftp://example.com/video.mp4")

	assert.False(t, result.IsFrozen)
	assert.Equal(t, core.ReasonNotVideoURL, result.Reason)
	assert.Equal(t, core.CategoryFiltered, result.Category)
	assert.Equal(t, 0, analyzer.callCount(), "filtered URLs must not reach the analyzer")

	// Filtered verdicts are cached like any other.
	service.CheckStream(context.Background(), "ftp://example.com/video.mp4")
	assert.Equal(t, 0, analyzer.callCount())
}

func TestCheckStreamMemoizesPerURL(t *testing.T) {
	analyzer := &stubAnalyzer{}
	service := newService(analyzer, 10, true)
	url := "http://example.com/live.m3u8"

	first := service.CheckStream(context.Background(), url)
	second := service.CheckStream(context.Background(), url)

	assert.Equal(t, 1, analyzer.callCount(), "second check must be served from cache")
	assert.Equal(t, first.ProcessingID, second.ProcessingID)

	require.NoError(t, service.ClearCache(context.Background()))

	service.CheckStream(context.Background(), url)
	assert.Equal(t, 2, analyzer.callCount(), "cleared cache must trigger a fresh probe")
}

func TestCheckStreamEvictionRetriggersProbe(t *testing.T) {
	analyzer := &stubAnalyzer{}
	service := newService(analyzer, 1, true)

	service.CheckStream(context.Background(), "http://example.com/live1.m3u8")
	service.CheckStream(context.Background(), "http://example.com/live2.m3u8")
	// live1 was evicted by live2 in the capacity-1 cache.
	service.CheckStream(context.Background(), "http://example.com/live1.m3u8")

	assert.Equal(t, 3, analyzer.callCount())
}

func TestCheckStreamCacheDisabled(t *testing.T) {
	analyzer := &stubAnalyzer{}
	service := newService(analyzer, 10, false)
	url := "http://example.com/live.m3u8"

	service.CheckStream(context.Background(), url)
	service.CheckStream(context.Background(), url)

	assert.Equal(t, 2, analyzer.callCount())
	assert.NoError(t, service.ClearCache(context.Background()))
}

func TestConcurrentChecksCollapseToOneProbe(t *testing.T) {
	analyzer := &stubAnalyzer{delay: 100 * time.Millisecond}
	service := newService(analyzer, 10, true)
	url := "http://example.com/live.m3u8"

	var wg sync.WaitGroup
	results := make([]*core.DetectionResult, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = service.CheckStream(context.Background(), url)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, analyzer.callCount(), "concurrent identical checks must share one probe")
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, url, r.URL)
	}
}
