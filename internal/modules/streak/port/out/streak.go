package out

import "context"

// TimestampStore persists the single streak start timestamp.
type TimestampStore interface {
	// Load reports ok=false with a nil error when nothing was ever stored.
	Load(ctx context.Context) (millis int64, ok bool, err error)
	Save(ctx context.Context, millis int64) error
	Close() error
}
