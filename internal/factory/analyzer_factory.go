package factory

import (
	"fmt"

	"github.com/mikey/frozen-screen-detector/internal/adapters/ffmpeg"
	"github.com/mikey/frozen-screen-detector/internal/config"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/utils"
	"go.uber.org/zap"
)

// AnalyzerFactory creates stream analyzers
type AnalyzerFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *AnalyzerFactory {
	return &AnalyzerFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateStreamAnalyzer creates a stream analyzer based on the configuration
func (f *AnalyzerFactory) CreateStreamAnalyzer() (core.StreamAnalyzer, error) {
	analyzerConfig := f.cfg.GetAnalyzer()

	switch analyzerConfig.Backend {
	case "ffmpeg":
		detector, err := f.cfg.GetDetector()
		if err != nil {
			return nil, err
		}
		runner := ffmpeg.NewExecRunner(f.logger)
		return ffmpeg.NewAnalyzer(
			runner,
			f.cfg.GetFFmpeg().Binary,
			detector.Timeout,
			detector.SampleDuration,
			detector.MinFrames,
			f.logger,
			f.textProcessor,
		), nil
	default:
		return nil, fmt.Errorf("unsupported analyzer backend: %s", analyzerConfig.Backend)
	}
}
