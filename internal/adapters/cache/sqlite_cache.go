package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/frozen-screen-detector/internal/core"
	"go.uber.org/zap"
)

// SQLiteCache is a SQLite implementation of the CacheRepository interface.
// It survives process restarts, which is useful when the monitoring daemon
// is redeployed between sweeps of the same channel list.
type SQLiteCache struct {
	db       *sql.DB
	capacity int
	logger   *zap.Logger
}

// NewSQLiteCache creates a new SQLite cache
func NewSQLiteCache(dbPath string, capacity int, logger *zap.Logger) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS freeze_cache (
			url TEXT PRIMARY KEY,
			is_frozen BOOLEAN,
			reason TEXT,
			category TEXT,
			frames_extracted INTEGER,
			elapsed_ms INTEGER,
			checked_at TIMESTAMP,
			processing_id TEXT,
			last_access TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index on last_access for faster eviction
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_last_access ON freeze_cache(last_access)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &SQLiteCache{
		db:       db,
		capacity: capacity,
		logger:   logger,
	}, nil
}

// Get retrieves a cached result for a URL and refreshes its access time
func (c *SQLiteCache) Get(ctx context.Context, url string) (*core.DetectionResult, bool) {
	var (
		isFrozen  bool
		reason    string
		category  string
		frames    int
		elapsedMS int64
		checkedAt string
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
	`, time.Now().Format(time.RFC3339Nano), url); err != nil {
		c.logger.Warn("Failed to refresh cache access time", zap.Error(err))
	}

	parsedAt, err := time.Parse(time.RFC3339Nano, checkedAt)
	if err != nil {
		c.logger.Error("Failed to parse checked_at timestamp", zap.Error(err))
		return nil, false
	}

	return &core.DetectionResult{
		URL:             url,
		IsFrozen:        isFrozen,
		Reason:          reason,
		Category:        core.Category(category),
		FramesExtracted: frames,
		Elapsed:         time.Duration(elapsedMS) * time.Millisecond,
		CheckedAt:       parsedAt,
		ProcessingID:    procID,
	}, true
}

// Set stores a detection result and evicts the oldest-accessed rows beyond
// the capacity bound
func (c *SQLiteCache) Set(ctx context.Context, url string, result *core.DetectionResult) {
	now := time.Now().Format(time.RFC3339Nano)

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO freeze_cache
			(url, is_frozen, reason, category, frames_extracted, elapsed_ms, checked_at, processing_id, last_access)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, url, result.IsFrozen, result.Reason, string(result.Category), result.FramesExtracted,
		result.Elapsed.Milliseconds(), result.CheckedAt.Format(time.RFC3339Nano), result.ProcessingID, now)
	if err != nil {
		c.logger.Error("Failed to insert cache entry", zap.Error(err), zap.String("url", url))
		return
	}

	_, err = c.db.ExecContext(ctx, `
		DELETE FROM freeze_cache
		WHERE url NOT IN (
			SELECT url FROM freeze_cache ORDER BY last_access DESC LIMIT ?
		)
	`, c.capacity)
	if err != nil {
		c.logger.Error("Failed to evict cache entries", zap.Error(err))
	}
}

// Clear removes every cached entry
func (c *SQLiteCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM freeze_cache`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Stop closes the database connection
func (c *SQLiteCache) Stop() {
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
