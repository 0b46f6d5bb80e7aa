package factory

import (
	"fmt"

	"github.com/mikey/frozen-screen-detector/internal/adapters/monitor"
	"github.com/mikey/frozen-screen-detector/internal/config"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"github.com/mikey/frozen-screen-detector/internal/ports"
	"go.uber.org/zap"
)

// MonitorFactory creates stream monitors based on configuration
type MonitorFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.FreezeDetectionService
}

// NewMonitorFactory creates a new monitor factory
func NewMonitorFactory(cfg *config.Config, logger *zap.Logger, service *core.FreezeDetectionService) *MonitorFactory {
	return &MonitorFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateStreamMonitor creates a stream monitor based on the configuration
func (f *MonitorFactory) CreateStreamMonitor() (ports.StreamMonitor, error) {
	serverConfig := f.cfg.GetServer()

	switch serverConfig.MonitorType {
	case "http":
		return monitor.NewHTTPMonitor(f.service, f.logger, serverConfig.ListenAddress), nil
	case "cli":
		return monitor.NewCliMonitor(f.service, f.logger, f.cfg.GetBool("cli.verbose"))
	default:
		return nil, fmt.Errorf("unsupported monitor type: %s", serverConfig.MonitorType)
	}
}
