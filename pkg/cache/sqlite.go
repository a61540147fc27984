package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"omg-hq/omg/pkg/bundle"

	_ "modernc.org/sqlite" // SQLite driver
)

// Config configures the SQLite cache.
type Config struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteCache implements bundle.Cache on top of a SQLite database.
type SQLiteCache struct {
	db        *sql.DB
	path      string
	logger    *slog.Logger
	closeOnce sync.Once

	getStmt    *sql.Stmt
	putStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	countStmt  *sql.Stmt
}

var _ bundle.Cache = (*SQLiteCache)(nil)

// Open opens or creates the cache database at cfg.Path, creating parent
// directories as needed.
func Open(cfg Config, logger *slog.Logger) (*SQLiteCache, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	c := &SQLiteCache{
		db:     db,
		path:   cfg.Path,
		logger: logger.With("component", "cache.sqlite"),
	}

	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	if err := c.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare cache statements: %w", err)
	}

	c.logger.Debug("Inspection cache opened", "path", cfg.Path)
	return c, nil
}

func (c *SQLiteCache) initSchema() error {
	_, err := c.db.Exec(Schema)
	return err
}

func (c *SQLiteCache) prepareStatements() error {
	var err error

	c.getStmt, err = c.db.Prepare(`
		SELECT size, mod_time, objects FROM inspections WHERE path = ?
	`)
	if err != nil {
		return err
	}

	c.putStmt, err = c.db.Prepare(`
		INSERT INTO inspections (path, size, mod_time, objects, recorded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			size = excluded.size,
			mod_time = excluded.mod_time,
			objects = excluded.objects,
			recorded_at = excluded.recorded_at
	`)
	if err != nil {
		return err
	}

	c.deleteStmt, err = c.db.Prepare(`
		DELETE FROM inspections WHERE recorded_at < ?
	`)
	if err != nil {
		return err
	}

	c.countStmt, err = c.db.Prepare(`
		SELECT COUNT(*) FROM inspections
	`)
	return err
}

// Get returns the objects stored for key.Path if the stored size and
// modification time match key.
func (c *SQLiteCache) Get(ctx context.Context, key bundle.FileKey) ([]bundle.ObjectAge, bool, error) {
	var (
		size    int64
		modTime int64
		data    string
	)
	err := c.getStmt.QueryRowContext(ctx, key.Path).Scan(&size, &modTime, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry for %q: %w", key.Path, err)
	}

	if size != key.Size || modTime != key.ModTime.UnixNano() {
		return nil, false, nil
	}

	var objects []bundle.ObjectAge
	if err := json.Unmarshal([]byte(data), &objects); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry for %q: %w", key.Path, err)
	}
	return objects, true, nil
}

// Put stores objects for key, replacing any older entry for the same path.
func (c *SQLiteCache) Put(ctx context.Context, key bundle.FileKey, objects []bundle.ObjectAge) error {
	if objects == nil {
		objects = []bundle.ObjectAge{}
	}
	data, err := json.Marshal(objects)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for %q: %w", key.Path, err)
	}

	_, err = c.putStmt.ExecContext(ctx,
		key.Path, key.Size, key.ModTime.UnixNano(), string(data), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to write cache entry for %q: %w", key.Path, err)
	}
	return nil
}

// Prune deletes entries recorded before cutoff and returns how many were
// removed.
func (c *SQLiteCache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.deleteStmt.ExecContext(ctx, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	if n > 0 {
		c.logger.Info("Pruned inspection cache", "deleted_count", n)
	}
	return n, nil
}

// Len returns the number of cached documents.
func (c *SQLiteCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.countStmt.QueryRowContext(ctx).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// Path returns the database file path.
func (c *SQLiteCache) Path() string {
	return c.path
}

// Close closes the prepared statements and the database.
func (c *SQLiteCache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{c.getStmt, c.putStmt, c.deleteStmt, c.countStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = c.db.Close()
	})
	return err
}
