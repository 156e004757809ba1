package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	geocodeKeyPrefix = "geocode:"
	// GeocodeTTL bounds how long a Nominatim answer is trusted.
	GeocodeTTL = 7 * 24 * time.Hour
)

// RedisGeocodeCache stores geocode results as JSON values with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: GeocodeTTL}
}

func geocodeKey(query string) string {
	return geocodeKeyPrefix + query
}

func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	queries []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueQueries(queries)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, q := range uniq {
		keys[i] = geocodeKey(q)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // miss
		}
		var coord domain.Coordinates
		if err := json.Unmarshal([]byte(s), &coord); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = coord
	}

	return out, nil
}

func (c *RedisGeocodeCache) PutMany(ctx context.Context, values map[string]domain.Coordinates) (err error) {
	defer obs.Time(ctx, "geocode.cache.redis.PutMany")(&err)

	if c.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if len(values) == 0 {
		return nil
	}

	pipe := c.Client.TxPipeline()
	for q, coord := range values {
		key := NormalizeQuery(q)
		if key == "" {
			return errors.New("put geocode cache: empty query key")
		}
		data, err := json.Marshal(coord)
		if err != nil {
			return fmt.Errorf("put geocode cache: encode %q: %w", key, err)
		}
		pipe.Set(ctx, geocodeKey(key), data, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put geocode cache: redis exec: %w", err)
	}

	return nil
}
