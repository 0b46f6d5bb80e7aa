package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateForLog(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "short", tp.TruncateForLog("short", 50))
	assert.Equal(t, "unbounded", tp.TruncateForLog("unbounded", 0))

	long := strings.Repeat("x", 100)
	truncated := tp.TruncateForLog(long, 50)
	assert.Equal(t, strings.Repeat("x", 50)+"...", truncated)
}

func TestTruncateForLogKeepsValidUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// Cutting at byte 4 would split the second rune.
	truncated := tp.TruncateForLog("日本語", 4)
	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, "日...", truncated)
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "clean", tp.SanitizeUTF8("clean"))

	dirty := "frame=\xff\xfe 25"
	sanitized := tp.SanitizeUTF8(dirty)
	assert.True(t, utf8.ValidString(sanitized))
	assert.Equal(t, "frame= 25", sanitized)
}
