package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/frozen-screen-detector/internal/config"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/factory"
	"github.com/mikey/frozen-screen-detector/internal/logging"
	"github.com/mikey/frozen-screen-detector/internal/ports"
	"github.com/mikey/frozen-screen-detector/internal/urlcheck"
	"github.com/mikey/frozen-screen-detector/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
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
	if err := container.Provide(factory.NewMonitorFactory); err != nil {
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

	// Register stream monitor
	if err := container.Provide(func(f *factory.MonitorFactory) (ports.StreamMonitor, error) {
		return f.CreateStreamMonitor()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
