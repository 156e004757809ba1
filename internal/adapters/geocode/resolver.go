package geocode

import (
	"context"
	"errors"
	"fmt"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"route-decision-service/internal/ports"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrPlaceNotFound is returned when no source can resolve a place name.
var ErrPlaceNotFound = errors.New("place not found")

// Resolver implements PlaceResolver over several sources.
//
// Lookup order:
//   - predefined Kinshasa landmarks (aliases included)
//   - the place repository
//   - the geocode cache
//   - Nominatim, whose answers are written back to the cache
//
// Every source but the first is optional. The resolver is safe for
// concurrent use when its sources are.
type Resolver struct {
	landmarks *StaticResolver
	repo      ports.PlaceRepository
	cache     ports.GeocodeCache
	client    *NominatimClient
	city      string
	country   string
}

type ResolverConfig struct {
	Repository ports.PlaceRepository
	Cache      ports.GeocodeCache
	Client     *NominatimClient
	City       string
	Country    string
}

func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		landmarks: NewLandmarkResolver(),
		repo:      cfg.Repository,
		cache:     cfg.Cache,
		client:    cfg.Client,
		city:      cfg.City,
		country:   cfg.Country,
	}
}

// query builds the free-form Nominatim query "<place>, <city>, <country>".
func (r *Resolver) query(name string) string {
	parts := []string{name}
	if r.city != "" {
		parts = append(parts, r.city)
	}
	if r.country != "" {
		parts = append(parts, r.country)
	}
	return strings.Join(parts, ", ")
}

func (r *Resolver) Resolve(ctx context.Context, name string) (_ *domain.Point, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	display := strings.Join(strings.Fields(name), " ")
	if display == "" {
		return nil, fmt.Errorf("resolve place: empty name: %w", ErrPlaceNotFound)
	}

	if p, err := r.landmarks.Resolve(ctx, display); err == nil {
		obs.GeocodeLookups.WithLabelValues("predefined").Inc()
		return p, nil
	}

	if r.repo != nil {
		p, err := r.repo.FindPlace(ctx, display)
		if err != nil {
			return nil, fmt.Errorf("resolve place %q: %w", display, err)
		}
		if p != nil {
			obs.GeocodeLookups.WithLabelValues("repository").Inc()
			return p, nil
		}
	}

	q := r.query(display)

	if r.cache != nil {
		hits, err := r.cache.GetMany(ctx, []string{q})
		if err != nil {
			// a broken cache must not block resolution
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Str("query", q).Msg("geocode cache read failed")
		} else {
			for _, c := range hits {
				obs.GeocodeLookups.WithLabelValues("cache").Inc()
				return domain.NewPoint(display, c.Lat, c.Lon, domain.KindStop), nil
			}
		}
	}

	if r.client == nil {
		obs.GeocodeLookups.WithLabelValues("miss").Inc()
		return nil, fmt.Errorf("resolve place %q: %w", display, ErrPlaceNotFound)
	}

	c, err := r.client.Search(ctx, q)
	if err != nil {
		if errors.Is(err, ErrPlaceNotFound) {
			obs.GeocodeLookups.WithLabelValues("miss").Inc()
		}
		return nil, fmt.Errorf("resolve place %q: %w", display, err)
	}
	obs.GeocodeLookups.WithLabelValues("nominatim").Inc()

	if r.cache != nil {
		if err := r.cache.PutMany(ctx, map[string]domain.Coordinates{q: c}); err != nil {
			log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Str("query", q).Msg("geocode cache write failed")
		}
	}

	return domain.NewPoint(display, c.Lat, c.Lon, domain.KindStop), nil
}

// Reverse names the place at c. Nominatim is asked first when configured;
// otherwise, or when it has no answer, the nearest landmark within
// ReverseRadiusKm is used.
func (r *Resolver) Reverse(ctx context.Context, c domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "geocode.Reverse")(&err)

	if r.client != nil {
		name, err := r.client.Reverse(ctx, c)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, ErrPlaceNotFound) {
			return "", fmt.Errorf("reverse geocode: %w", err)
		}
	}
	return r.landmarks.Reverse(ctx, c)
}
