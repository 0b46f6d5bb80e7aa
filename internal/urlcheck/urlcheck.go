package urlcheck

import (
	"strings"

	"go.uber.org/zap"
)

// videoIndicators are substrings that mark a URL as a plausible video
// stream. The broad entries (".ts", "stream", "live") are known to
// misclassify unrelated URLs; that imprecision is inherited deliberately.
var videoIndicators = []string{".m3u8", ".mp4", ".flv", ".ts", "stream", "live", "m3u8"}

// Classifier provides a cheap lexical pre-filter deciding whether a URL is
// worth probing with the expensive external tool
type Classifier struct {
	logger *zap.Logger
}

// NewClassifier creates a new URL classifier
func NewClassifier(logger *zap.Logger) *Classifier {
	return &Classifier{
		logger: logger,
	}
}

// IsVideoURL reports whether the URL plausibly points at a video stream.
// Only literal "http" and "rtmp" prefixes are accepted (case-sensitive, so
// "https" passes through the "http" prefix); the indicator match on the
// rest of the URL is case-insensitive.
func (c *Classifier) IsVideoURL(url string) bool {
	if !strings.HasPrefix(url, "http") && !strings.HasPrefix(url, "rtmp") {
		return false
	}

	lower := strings.ToLower(url)
	for _, indicator := range videoIndicators {
		if strings.Contains(lower, indicator) {
			if c.logger != nil {
				c.logger.Debug("URL matched video indicator",
					zap.String("indicator", indicator))
			}
			return true
		}
	}

	return false
}
