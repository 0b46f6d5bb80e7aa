package urlcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestIsVideoURL(t *testing.T) {
	classifier := NewClassifier(zap.NewNop())

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"m3u8 playlist", "https://cdn.example.com/playlist.m3u8", true},
		{"mp4 file", "http://example.com/video.mp4", true},
		{"flv file", "http://example.com/clip.flv", true},
		{"ts segment", "http://example.com/segment001.ts", true},
		{"stream path", "rtmp://example.com/app/stream", true},
		{"live path", "http://example.com/live/channel1", true},
		{"uppercase indicator", "http://x.com/STREAM.M3U8", true},
		{"no indicator", "http://example.com/index.html", false},
		{"ftp scheme", "ftp://example.com/video.mp4", false},
		{"file scheme", "file:///video.mp4", false},
		{"empty", "", false},
		// The scheme prefix match is case-sensitive; only the indicator
		// match is folded.
		{"uppercase scheme", "HTTP://x.com/stream.m3u8", false},
		// The "live" indicator is broad and matches unrelated paths; that
		// imprecision is inherited from the heuristic, not a bug.
		{"delivery path", "http://example.com/delivery.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.IsVideoURL(tt.url), "url: %s", tt.url)
		})
	}
}

func TestIsVideoURLNilLogger(t *testing.T) {
	classifier := NewClassifier(nil)
	assert.True(t, classifier.IsVideoURL("http://example.com/live.m3u8"))
}
