package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/frozen-screen-detector/internal/urlcheck"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReasonNotVideoURL is reported for URLs rejected by the cheap pre-filter
const ReasonNotVideoURL = "not a video stream URL"

// FreezeDetectionService is the core service for frozen-screen detection.
// It chains the URL classifier, the stream analyzer and the result cache,
// and collapses concurrent checks for the same URL into a single probe.
type FreezeDetectionService struct {
	analyzer     StreamAnalyzer
	cache        CacheRepository
	classifier   *urlcheck.Classifier
	logger       *zap.Logger
	cacheEnabled bool
	group        singleflight.Group
}

// NewFreezeDetectionService creates a new freeze detection service
func NewFreezeDetectionService(
	analyzer StreamAnalyzer,
	cache CacheRepository,
	classifier *urlcheck.Classifier,
	logger *zap.Logger,
	cacheEnabled bool,
) *FreezeDetectionService {
	return &FreezeDetectionService{
		analyzer:     analyzer,
		cache:        cache,
		classifier:   classifier,
		logger:       logger,
		cacheEnabled: cacheEnabled,
	}
}

// CheckStream determines whether the stream behind the URL shows a frozen
// picture. The check never fails outward: every error condition is expressed
// inside the returned DetectionResult.
func (s *FreezeDetectionService) CheckStream(ctx context.Context, url string) *DetectionResult {
	if s.cacheEnabled {
		if result, ok := s.cache.Get(ctx, url); ok {
			s.logger.Debug("Cache hit for stream", zap.String("url", url))
			return result
		}
	}

	// Identical in-flight URLs share one probe instead of spawning
	// redundant ffmpeg processes.
	v, _, shared := s.group.Do(url, func() (interface{}, error) {
		return s.check(ctx, url), nil
	})
	if shared {
		s.logger.Debug("Collapsed concurrent checks for stream", zap.String("url", url))
	}
	return v.(*DetectionResult)
}

func (s *FreezeDetectionService) check(ctx context.Context, url string) *DetectionResult {
	var result *DetectionResult
	if !s.classifier.IsVideoURL(url) {
		s.logger.Debug("URL rejected by classifier", zap.String("url", url))
		result = &DetectionResult{
			URL:          url,
			IsFrozen:     false,
			Reason:       ReasonNotVideoURL,
			Category:     CategoryFiltered,
			CheckedAt:    time.Now(),
			ProcessingID: uuid.NewString(),
		}
	} else {
		result = s.analyzer.Analyze(ctx, url)
	}

	// Filtered verdicts are cached too: the classifier is pure, so the
	// answer for an identical URL never changes.
	if s.cacheEnabled {
		s.cache.Set(ctx, url, result)
	}

	return result
}

// ClearCache discards every cached detection result; the next check for any
// URL triggers a fresh probe.
func (s *FreezeDetectionService) ClearCache(ctx context.Context) error {
	if !s.cacheEnabled {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear detection cache", zap.Error(err))
		return err
	}
	s.logger.Info("Detection cache cleared")
	return nil
}
