package config

import (
	"fmt"
	"time"
)

// AnalyzerConfig represents the configuration for the analyzer backend
type AnalyzerConfig struct {
	Backend string
}

// DetectorConfig represents the detection tuning parameters
type DetectorConfig struct {
	Timeout        time.Duration
	SampleDuration time.Duration
	MinFrames      int
}

// FFmpegConfig represents the configuration for the ffmpeg analyzer
type FFmpegConfig struct {
	Binary string
}

// CacheConfig represents the configuration for the result cache
type CacheConfig struct {
	Type       string
	Enabled    bool
	Capacity   int
	SQLitePath string
	MySQLDSN   string
}

// ServerConfig represents the configuration for the monitor surface
type ServerConfig struct {
	MonitorType   string
	ListenAddress string
}

// GetAnalyzer returns the analyzer configuration
func (c *Config) GetAnalyzer() AnalyzerConfig {
	return AnalyzerConfig{
		Backend: c.GetString("analyzer.backend"),
	}
}

// GetDetector returns the detection configuration
func (c *Config) GetDetector() (DetectorConfig, error) {
	timeout, err := c.GetDuration("detector.timeout")
	if err != nil {
		return DetectorConfig{}, fmt.Errorf("invalid detector timeout: %w", err)
	}
	sampleDuration, err := c.GetDuration("detector.sample_duration")
	if err != nil {
		return DetectorConfig{}, fmt.Errorf("invalid detector sample duration: %w", err)
	}
	return DetectorConfig{
		Timeout:        timeout,
		SampleDuration: sampleDuration,
		MinFrames:      c.GetInt("detector.min_frames"),
	}, nil
}

// GetFFmpeg returns the ffmpeg configuration
func (c *Config) GetFFmpeg() FFmpegConfig {
	return FFmpegConfig{
		Binary: c.GetString("ffmpeg.binary"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:       c.GetString("cache.type"),
		Enabled:    c.GetBool("cache.enabled"),
		Capacity:   c.GetInt("cache.capacity"),
		SQLitePath: c.GetString("cache.sqlite_path"),
		MySQLDSN:   c.GetString("cache.mysql_dsn"),
	}
}

// GetServer returns the server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		MonitorType:   c.GetString("server.monitor_type"),
		ListenAddress: c.GetString("server.listen_address"),
	}
}
