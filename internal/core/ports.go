package core

import (
	"context"
)

// StreamAnalyzer defines the interface for probing a stream URL.
// Implementations are total: every failure mode (timeout, launch error,
// unusable output) is folded into the returned DetectionResult instead of
// being surfaced as an error.
type StreamAnalyzer interface {
	// Analyze probes the stream and reports whether the picture is frozen
	Analyze(ctx context.Context, url string) *DetectionResult
}

// CacheRepository defines the interface for caching detection results,
// keyed on the exact URL string. Entries never expire by time; they are
// evicted least-recently-used once the capacity bound is reached, or
// discarded wholesale by Clear.
type CacheRepository interface {
	// Get retrieves a cached result for a URL
	Get(ctx context.Context, url string) (*DetectionResult, bool)

	// Set stores a detection result
	Set(ctx context.Context, url string, result *DetectionResult)

	// Clear removes every cached entry
	Clear(ctx context.Context) error
}
