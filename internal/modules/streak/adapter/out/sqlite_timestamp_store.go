package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"holystreak/internal/modules/streak/domain"
	streakout "holystreak/internal/modules/streak/port/out"
	apperrors "holystreak/internal/platform/errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteTimestampStore struct {
	db      *sql.DB
	retries uint64
	logger  *zap.Logger
}

func NewSQLiteTimestampStore(dbPath string, retries int, logger *zap.Logger) (streakout.TimestampStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, apperrors.WrapStorage("create db dir", "", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.WrapStorage("open sqlite", "", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if retries < 0 {
		retries = 0
	}
	store := &SQLiteTimestampStore{db: db, retries: uint64(retries), logger: logger}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteTimestampStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return apperrors.WrapStorage("create settings table", "", err)
	}
	return nil
}

func (s *SQLiteTimestampStore) Load(ctx context.Context) (int64, bool, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, domain.StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.WrapStorage("load", domain.StorageKey, err)
	}
	raw := strings.TrimSpace(value.String)
	if !value.Valid || raw == "" {
		return 0, false, nil
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, apperrors.WrapStorage("load", domain.StorageKey, fmt.Errorf("%w: %q", apperrors.ErrCorruptTimestamp, raw))
	}
	return millis, true, nil
}

func (s *SQLiteTimestampStore) Save(ctx context.Context, millis int64) error {
	const stmt = `
INSERT INTO settings (key, value)
VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`
	value := strconv.FormatInt(millis, 10)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxElapsedTime = 2 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.retries), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		_, err := s.db.ExecContext(ctx, stmt, domain.StorageKey, value)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !isBusy(err) {
			return backoff.Permanent(err)
		}
		s.logger.Warn("database busy, retrying streak save",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		return err
	}, policy)
	if err != nil {
		return apperrors.WrapStorage("save", domain.StorageKey, err)
	}
	return nil
}

// isBusy reports whether err is a lock held by another connection. Extended
// codes such as SQLITE_BUSY_SNAPSHOT share the primary code in the low byte.
func isBusy(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

func (s *SQLiteTimestampStore) Close() error {
	return s.db.Close()
}
