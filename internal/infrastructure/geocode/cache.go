package geocode

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/placeshare/backend/internal/domain/entity"
	"github.com/placeshare/backend/pkg/helpers"
)

// Cached wraps a Geocoder with a Redis read-through cache. Addresses are
// stable, so hits avoid burning geocoding quota. Cache failures fall through
// to the inner geocoder; they never fail the lookup.
type Cached struct {
	Inner  Geocoder
	Redis  *redis.Client
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCached(inner Geocoder, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cached {
	return &Cached{Inner: inner, Redis: rdb, TTL: ttl, Logger: logger}
}

func cacheKey(address string) string {
	return "geocode:addr:" + strings.ToLower(strings.TrimSpace(address))
}

func (c *Cached) Geocode(ctx context.Context, address string) (entity.Coordinates, error) {
	if c.Redis == nil {
		return c.Inner.Geocode(ctx, address)
	}

	key := cacheKey(address)
	var coords entity.Coordinates
	if ok, err := helpers.RedisGetJSON(ctx, c.Redis, key, &coords); err == nil && ok {
		return coords, nil
	}

	coords, err := c.Inner.Geocode(ctx, address)
	if err != nil {
		return entity.Coordinates{}, err
	}

	if err := helpers.RedisSetJSON(ctx, c.Redis, key, coords, c.TTL); err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("geocode cache write failed")
	}
	return coords, nil
}

var _ Geocoder = (*Cached)(nil)
