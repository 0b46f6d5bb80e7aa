package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"go.uber.org/zap"
)

// MySQLCache is a MySQL implementation of the CacheRepository interface,
// for deployments where several monitor instances share one verdict store
type MySQLCache struct {
	db       *sql.DB
	capacity int
	logger   *zap.Logger
}

// NewMySQLCache creates a new MySQL cache
func NewMySQLCache(dsn string, capacity int, logger *zap.Logger) (*MySQLCache, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS freeze_cache (
			url VARCHAR(768) PRIMARY KEY,
			is_frozen BOOLEAN,
			reason TEXT,
			category VARCHAR(64),
			frames_extracted INT,
			elapsed_ms BIGINT,
			checked_at TIMESTAMP NULL,
			processing_id VARCHAR(36),
			last_access TIMESTAMP NULL,
			INDEX idx_last_access (last_access)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &MySQLCache{
		db:       db,
		capacity: capacity,
		logger:   logger,
	}, nil
}

// Get retrieves a cached result for a URL and refreshes its access time
func (c *MySQLCache) Get(ctx context.Context, url string) (*core.DetectionResult, bool) {
	var (
		isFrozen  bool
		reason    string
		category  string
		frames    int
		elapsedMS int64
		checkedAt time.Time
		procID    string
	)

	err := c.db.QueryRowContext(ctx, `
		SELECT is_frozen, reason, category, frames_extracted, elapsed_ms, checked_at, processing_id
		FROM freeze_cache
		WHERE url = ?
	`, url).Scan(&isFrozen, &reason, &category, &frames, &elapsedMS, &checkedAt, &procID)

	if err != nil {
		if err != sql.ErrNoRows {
			c.logger.Error("Failed to query cache", zap.Error(err), zap.String("url", url))
		}
		return nil, false
	}

	if _, err := c.db.ExecContext(ctx, `
		UPDATE freeze_cache SET last_access = ? WHERE url = ?
	`, time.Now(), url); err != nil {
		c.logger.Warn("Failed to refresh cache access time", zap.Error(err))
	}

	return &core.DetectionResult{
		URL:             url,
		IsFrozen:        isFrozen,
		Reason:          reason,
		Category:        core.Category(category),
		FramesExtracted: frames,
		Elapsed:         time.Duration(elapsedMS) * time.Millisecond,
		CheckedAt:       checkedAt,
		ProcessingID:    procID,
	}, true
}

// Set stores a detection result and evicts the oldest-accessed rows beyond
// the capacity bound
func (c *MySQLCache) Set(ctx context.Context, url string, result *core.DetectionResult) {
	_, err := c.db.ExecContext(ctx, `
		REPLACE INTO freeze_cache
			(url, is_frozen, reason, category, frames_extracted, elapsed_ms, checked_at, processing_id, last_access)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, url, result.IsFrozen, result.Reason, string(result.Category), result.FramesExtracted,
		result.Elapsed.Milliseconds(), result.CheckedAt, result.ProcessingID, time.Now())
	if err != nil {
		c.logger.Error("Failed to insert cache entry", zap.Error(err), zap.String("url", url))
		return
	}

	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM freeze_cache`).Scan(&count); err != nil {
		c.logger.Error("Failed to count cache entries", zap.Error(err))
		return
	}
	if count <= c.capacity {
		return
	}

	_, err = c.db.ExecContext(ctx, `
		DELETE FROM freeze_cache ORDER BY last_access ASC LIMIT ?
	`, count-c.capacity)
	if err != nil {
		c.logger.Error("Failed to evict cache entries", zap.Error(err))
	}
}

// Clear removes every cached entry
func (c *MySQLCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM freeze_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stop closes the database connection
func (c *MySQLCache) Stop() {
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
