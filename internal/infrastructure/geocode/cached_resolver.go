package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wanderlens/backend/internal/application/ingestion"
	"github.com/wanderlens/backend/internal/application/places"
	"github.com/wanderlens/backend/internal/domain/shared/valueobject"
)

const (
	reverseKeyPrefix = "geocode:rev:"
	forwardKeyPrefix = "geocode:pin:"
	defaultCacheTTL  = 30 * 24 * time.Hour
)

// Ensure CachedResolver implements the ingestion port
var _ ingestion.GeoResolver = (*CachedResolver)(nil)

// CachedResolver wraps a GeoResolver with a Redis lookup cache. Addresses
// change rarely, so cache failures degrade to a direct provider call rather
// than failing the resolution.
type CachedResolver struct {
	inner  ingestion.GeoResolver
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedResolver creates a caching decorator around a resolver
func NewCachedResolver(inner ingestion.GeoResolver, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedResolver {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedResolver{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// ReverseGeocode serves from cache when possible. Coordinates are rounded
// to 4 decimal places (roughly 11 meters) so nearby lookups share entries.
func (r *CachedResolver) ReverseGeocode(ctx context.Context, point valueobject.GeoPoint) (places.ResolvedLocation, error) {
	key := fmt.Sprintf("%s%.4f,%.4f", reverseKeyPrefix, point.Latitude(), point.Longitude())

	if cached, ok := r.get(ctx, key); ok {
		return cached, nil
	}

	resolved, err := r.inner.ReverseGeocode(ctx, point)
	if err != nil {
		return places.ResolvedLocation{}, err
	}

	r.set(ctx, key, resolved)
	return resolved, nil
}

// ForwardGeocode serves postal code lookups from cache when possible
func (r *CachedResolver) ForwardGeocode(ctx context.Context, postalCode string) (places.ResolvedLocation, error) {
	key := forwardKeyPrefix + postalCode

	if cached, ok := r.get(ctx, key); ok {
		return cached, nil
	}

	resolved, err := r.inner.ForwardGeocode(ctx, postalCode)
	if err != nil {
		return places.ResolvedLocation{}, err
	}

	r.set(ctx, key, resolved)
	return resolved, nil
}

func (r *CachedResolver) get(ctx context.Context, key string) (places.ResolvedLocation, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
		}
		return places.ResolvedLocation{}, false
	}

	var resolved places.ResolvedLocation
	if err := json.Unmarshal(data, &resolved); err != nil {
		r.logger.Warn("geocode cache entry corrupt", zap.String("key", key), zap.Error(err))
		return places.ResolvedLocation{}, false
	}
	return resolved, true
}

func (r *CachedResolver) set(ctx context.Context, key string, resolved places.ResolvedLocation) {
	data, err := json.Marshal(resolved)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(err))
	}
}
