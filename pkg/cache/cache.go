// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// Backends share the [Cache] interface: [FileCache] for the CLI,
// [RedisCache], [MongoCache] and [SQLiteCache] for shared or long-lived
// stores, and [NullCache] to disable caching. [Open] picks one from a URL.
package cache

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/edgeviz/pkg/errors"
)

// DefaultTTL is how long artifacts are kept when the caller does not say.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero means
// the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop all their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Clear removes every entry of c. Caches without [Clearer] report
// [errors.ErrCodeUnsupported].
func Clear(ctx context.Context, c Cache) (int, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnsupported, "cache %T cannot be cleared", c)
	}
	return cl.Clear(ctx)
}

// Open returns the cache described by rawURL:
//
//	""  or "none"             caching disabled
//	file:///path/to/dir       files under a directory
//	redis://host:6379/0       Redis
//	mongodb://host:27017/db   MongoDB (collection "artifacts")
//	sqlite:///path/to/file.db SQLite
//
// A bare path is treated as a file cache directory.
func Open(ctx context.Context, rawURL string) (Cache, error) {
	switch rawURL {
	case "", "none", "off":
		return NewNullCache(), nil
	}
	if !strings.Contains(rawURL, "://") {
		return asCache(NewFileCache(rawURL))
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid cache url")
	}
	switch u.Scheme {
	case "file":
		return asCache(NewFileCache(localPath(u)))
	case "redis", "rediss":
		return asCache(NewRedisCache(ctx, rawURL))
	case "mongodb", "mongodb+srv":
		return asCache(NewMongoCache(ctx, rawURL))
	case "sqlite", "sqlite3":
		return asCache(NewSQLiteCache(ctx, localPath(u)))
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported cache scheme %q", u.Scheme)
}

// asCache keeps a failed constructor from producing a non-nil interface
// holding a nil pointer.
func asCache[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}

// localPath returns the filesystem path of a file:// or sqlite:// URL.
// "sqlite://cache.db" (host form) is read as a relative path.
func localPath(u *url.URL) string {
	p := u.Path
	if u.Host != "" {
		p = filepath.Join(u.Host, p)
	}
	return filepath.FromSlash(p)
}
