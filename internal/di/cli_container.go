package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/frozen-screen-detector/internal/config"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/factory"
	"github.com/mikey/frozen-screen-detector/internal/logging"
	"github.com/mikey/frozen-screen-detector/internal/urlcheck"
	"github.com/mikey/frozen-screen-detector/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Detection flags
	Timeout        string
	SampleDuration string
	MinFrames      int

	// FFmpeg flags
	FFmpegBinary string

	// Cache flags
	CacheCapacity int

	// Input flags
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Detection flags
	flag.StringVar(&flags.Timeout, "timeout", "5s", "Maximum time to wait for the probe")
	flag.StringVar(&flags.SampleDuration, "sample-duration", "3s", "Length of stream time to sample")
	flag.IntVar(&flags.MinFrames, "min-frames", 2, "Changed-frame count below which the picture is considered frozen")

	// FFmpeg flags
	flag.StringVar(&flags.FFmpegBinary, "ffmpeg", "ffmpeg", "Path to the ffmpeg binary")

	// Cache flags
	flag.IntVar(&flags.CacheCapacity, "cache-capacity", 100, "Maximum number of cached URL verdicts")

	// Input flags
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewAnalyzerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register URL classifier
	if err := container.Provide(func(logger *zap.Logger) *urlcheck.Classifier {
		return urlcheck.NewClassifier(logger)
	}); err != nil {
		return nil, err
	}

	// Register stream analyzer
	if err := container.Provide(func(f *factory.AnalyzerFactory) (core.StreamAnalyzer, error) {
		return f.CreateStreamAnalyzer()
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register cache enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register freeze detection service
	if err := container.Provide(core.NewFreezeDetectionService); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set detection parameters
	v.Set("detector.timeout", flags.Timeout)
	v.Set("detector.sample_duration", flags.SampleDuration)
	v.Set("detector.min_frames", flags.MinFrames)

	// Set ffmpeg binary
	v.Set("ffmpeg.binary", flags.FFmpegBinary)

	// One-shot runs keep the default in-memory cache
	v.Set("cache.type", "memory")
	v.Set("cache.capacity", flags.CacheCapacity)

	return config.NewFromViper(v)
}
