package core

import (
	"time"
)

// Category classifies a detection outcome so callers do not have to
// pattern-match the human-readable reason text.
type Category string

const (
	// CategoryOK means the probe confirmed a moving picture
	CategoryOK Category = "ok"
	// CategoryFiltered means the URL did not look like a video stream
	CategoryFiltered Category = "filtered"
	// CategoryFrozenSparseFrames means too few scene changes were observed
	CategoryFrozenSparseFrames Category = "frozen_sparse_frames"
	// CategoryFrozenFastExit means the probe finished implausibly fast
	CategoryFrozenFastExit Category = "frozen_fast_exit"
	// CategoryAnalysisFailed means the tool ran but its output was unusable
	CategoryAnalysisFailed Category = "analysis_failed"
	// CategoryTimeout means the probe exceeded its time budget
	CategoryTimeout Category = "timeout"
	// CategoryError means the probe could not be executed at all
	CategoryError Category = "error"
)

// DetectionResult represents the outcome of a frozen-screen check.
// Reason is empty only for a clean "confirmed moving" outcome; every other
// path populates it with a human-readable explanation.
type DetectionResult struct {
	URL             string
	IsFrozen        bool
	Reason          string
	Category        Category
	FramesExtracted int
	Elapsed         time.Duration
	CheckedAt       time.Time
	ProcessingID    string
}

// CacheEntry represents a cached detection result for a stream URL
type CacheEntry struct {
	URL        string
	Result     DetectionResult
	LastAccess time.Time
}
