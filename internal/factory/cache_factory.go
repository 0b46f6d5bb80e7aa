package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/frozen-screen-detector/internal/adapters/cache"
	"github.com/mikey/frozen-screen-detector/internal/config"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates cache repositories based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCacheRepository creates a cache repository based on the configuration
func (f *CacheFactory) CreateCacheRepository() (core.CacheRepository, error) {
	cacheConfig := f.cfg.GetCache()

	switch cacheConfig.Type {
	case "memory":
		return cache.NewMemoryCache(cacheConfig.Capacity, f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(cacheConfig.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return cache.NewSQLiteCache(cacheConfig.SQLitePath, cacheConfig.Capacity, f.logger)
	case "mysql":
		return cache.NewMySQLCache(cacheConfig.MySQLDSN, cacheConfig.Capacity, f.logger)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheConfig.Type)
	}
}

// IsCacheEnabled returns whether caching is enabled
func (f *CacheFactory) IsCacheEnabled() bool {
	return f.cfg.GetBool("cache.enabled")
}
