// Package cache stores geolocation lookups so repeated runs and requests do
// not hit the IP geolocation service. Entries are msgpack encoded and expire
// after a TTL.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/smokyabdulrahman/salat/internal/geo"
)

// DefaultGeoTTL is how long a detected location is trusted.
const DefaultGeoTTL = 24 * time.Hour

// GeoEntry stores a cached geolocation result with a timestamp.
type GeoEntry struct {
	Location geo.Location `msgpack:"location"`
	CachedAt time.Time    `msgpack:"cached_at"`
}

// Cache layers typed geolocation entries over a Store.
type Cache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultGeoTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New creates a Cache on top of store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		ttl:    DefaultGeoTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func geoKey(ip string) string {
	if ip == "" {
		return "geo:self"
	}
	return "geo:" + ip
}

// LoadGeo returns the cached location for ip ("" for this machine), or nil
// when the entry is missing, unreadable or older than the TTL.
func (c *Cache) LoadGeo(ctx context.Context, ip string) *geo.Location {
	data, err := c.store.Get(ctx, geoKey(ip))
	if err != nil || data == nil {
		if err != nil {
			c.logger.Debug("geo cache read failed", zap.String("ip", ip), zap.Error(err))
		}
		return nil
	}

	var entry GeoEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		c.logger.Debug("geo cache entry unreadable", zap.String("ip", ip), zap.Error(err))
		return nil
	}

	if c.now().Sub(entry.CachedAt) > c.ttl {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result.
func (c *Cache) SaveGeo(ctx context.Context, ip string, loc *geo.Location) error {
	entry := GeoEntry{
		Location: *loc,
		CachedAt: c.now(),
	}

	data, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode geo cache: %w", err)
	}

	if err := c.store.Set(ctx, geoKey(ip), data, c.ttl); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}

// Locate returns the cached location for ip or asks detect and caches the
// answer. Cache write failures are logged, not returned.
func (c *Cache) Locate(ctx context.Context, ip string, detect func(context.Context, string) (*geo.Location, error)) (*geo.Location, bool, error) {
	if loc := c.LoadGeo(ctx, ip); loc != nil {
		return loc, true, nil
	}

	loc, err := detect(ctx, ip)
	if err != nil {
		return nil, false, err
	}

	if err := c.SaveGeo(ctx, ip, loc); err != nil {
		c.logger.Warn("geo cache write failed", zap.String("ip", ip), zap.Error(err))
	}
	return loc, false, nil
}
