package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/utils"
	"go.uber.org/zap"
)

// sceneThreshold is the fixed scene-change score above which a frame counts
// as "changed". Frames below it are discarded by the select filter.
const sceneThreshold = "0.01"

// fastExitFraction marks a probe as suspicious when it finishes in less
// than this fraction of the requested sample duration.
const fastExitFraction = 0.4

// frameCountRe matches the "frame=  123" token ffmpeg prints on stderr for
// the number of frames that passed the select filter.
var frameCountRe = regexp.MustCompile(`frame=\s*(\d+)`)

// Analyzer is an implementation of the StreamAnalyzer interface that probes
// a stream by running ffmpeg with a scene-change select filter and a null
// sink, then interprets the diagnostic output.
type Analyzer struct {
	runner         ProcessRunner
	binary         string
	timeout        time.Duration
	sampleDuration time.Duration
	minFrames      int
	logger         *zap.Logger
	textProcessor  *utils.TextProcessor
}

// NewAnalyzer creates a new ffmpeg stream analyzer
func NewAnalyzer(
	runner ProcessRunner,
	binary string,
	timeout time.Duration,
	sampleDuration time.Duration,
	minFrames int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Analyzer {
	return &Analyzer{
		runner:         runner,
		binary:         binary,
		timeout:        timeout,
		sampleDuration: sampleDuration,
		minFrames:      minFrames,
		logger:         logger,
		textProcessor:  textProcessor,
	}
}

// buildArgs assembles the ffmpeg invocation: sample the stream for the
// configured duration, keep only frames whose scene-change score exceeds
// the threshold, discard the frames themselves, and keep logging minimal.
func (a *Analyzer) buildArgs(url string) []string {
	return []string{
		"-i", url,
		"-t", formatSeconds(a.sampleDuration),
		"-vf", `select=gt(scene\,` + sceneThreshold + `)`,
		"-vsync", "0",
		"-f", "null",
		"-loglevel", "error",
		"-",
	}
}

// Analyze probes the stream URL. Every failure mode is absorbed into the
// returned DetectionResult: an unreachable or erroring stream is reported
// as "not frozen" with a reason, never as a positive frozen verdict.
func (a *Analyzer) Analyze(ctx context.Context, url string) *core.DetectionResult {
	result := &core.DetectionResult{
		URL:          url,
		CheckedAt:    time.Now(),
		ProcessingID: uuid.NewString(),
	}

	start := time.Now()
	run, err := a.runner.Run(ctx, a.binary, a.buildArgs(url), a.timeout)
	result.Elapsed = time.Since(start)

	if err != nil {
		a.logger.Debug("Probe execution failed",
			zap.String("url", a.textProcessor.TruncateForLog(url, 50)),
			zap.Error(err))
		result.Category = core.CategoryError
		result.Reason = fmt.Sprintf("detection error: %s", err)
		return result
	}

	if run.TimedOut {
		// Timeout usually means the stream is unreachable or slow, which
		// is ambiguous; it is never interpreted as frozen.
		a.logger.Debug("Probe timed out",
			zap.String("url", a.textProcessor.TruncateForLog(url, 50)),
			zap.Duration("timeout", a.timeout))
		result.Category = core.CategoryTimeout
		result.Reason = fmt.Sprintf("detection timed out (%s)", a.timeout)
		return result
	}

	match := frameCountRe.FindStringSubmatch(run.Output)
	if !run.ExitOK || match == nil {
		a.logger.Warn("Stream analysis failed or produced no frame data",
			zap.String("url", a.textProcessor.TruncateForLog(url, 50)),
			zap.String("output", a.textProcessor.TruncateForLog(a.textProcessor.SanitizeUTF8(run.Output), 100)))
		result.Category = core.CategoryAnalysisFailed
		result.Reason = "stream analysis failed"
		return result
	}

	frames, convErr := strconv.Atoi(match[1])
	if convErr != nil {
		result.Category = core.CategoryAnalysisFailed
		result.Reason = "stream analysis failed"
		return result
	}
	result.FramesExtracted = frames

	a.logger.Debug("Extracted changed frames",
		zap.String("url", a.textProcessor.TruncateForLog(url, 50)),
		zap.Int("frames", frames))

	if frames < a.minFrames {
		result.IsFrozen = true
		result.Category = core.CategoryFrozenSparseFrames
		result.Reason = fmt.Sprintf("too few changed frames (%d), likely frozen", frames)
		return result
	}

	// A probe that finishes much faster than the requested sample window
	// did not actually watch the stream for that long; treat it as positive
	// evidence of a frozen or degenerate feed.
	if result.Elapsed < time.Duration(fastExitFraction*float64(a.sampleDuration)) {
		result.IsFrozen = true
		result.Category = core.CategoryFrozenFastExit
		result.Reason = fmt.Sprintf("execution time abnormally short (%.2fs), likely frozen or invalid stream", result.Elapsed.Seconds())
		return result
	}

	result.Category = core.CategoryOK
	return result
}

// formatSeconds renders a duration as a plain seconds value for ffmpeg's -t flag
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
