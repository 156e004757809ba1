package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"route-decision-service/internal/adapters/geocode"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"route-decision-service/internal/ports"
	"route-decision-service/internal/services"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const maxNearbyRadiusKm = 50.0

type PlaceHandler struct {
	Repo ports.PlaceRepository
	// Landmarks are searched after the repository by Nearby.
	Landmarks []*domain.Point
	Reverser  ports.ReverseResolver
}

// List returns the stored places, filtered by the optional q parameter.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	limit, err := queryLimit(r.URL.Query(), 0)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))

	res := dto.ListPlacesResponse{}
	if q == "" {
		places, lerr := h.Repo.ListPlaces(r.Context())
		err = lerr
		if limit > 0 && len(places) > limit {
			places = places[:limit]
		}
		res.Places = dto.NewPointResponses(places)
	} else {
		places, serr := h.Repo.SearchPlaces(r.Context(), q, limit)
		err = serr
		res.Places = dto.NewPointResponses(places)
	}
	if err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("list places failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Nearby lists known places within radius_km (default 2) of lat/lon, closest first.
func (h *PlaceHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query()
	center, err := queryCoordinates(query)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	radius := services.DefaultNearbyRadiusKm
	if raw := query.Get("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > maxNearbyRadiusKm {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("radius_km must be in (0, %v]", maxNearbyRadiusKm))
			return
		}
		radius = v
	}

	limit, err := queryLimit(query, 10)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var stored []*domain.Point
	if h.Repo != nil {
		stored, err = h.Repo.ListPlaces(r.Context())
		if err != nil {
			log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("list places failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	found := services.FindNearby(center, radius, limit, stored, h.Landmarks)
	writeJSON(w, r, http.StatusOK, dto.NewNearbyPlacesResponse(center, radius, found))
}

// Reverse names the place at lat/lon.
func (h *PlaceHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	c, err := queryCoordinates(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	name, err := h.Reverser.Reverse(r.Context(), c)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, dto.ReverseResponse{Name: name, Lat: c.Lat, Lon: c.Lon})
	case errors.Is(err, geocode.ErrPlaceNotFound):
		writeError(w, r, http.StatusNotFound, "no place known at these coordinates")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "reverse geocoding timed out")
	default:
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("reverse geocode failed")
		writeError(w, r, http.StatusBadGateway, "reverse geocoding failed")
	}
}

// queryLimit parses the optional limit parameter (1..100).
func queryLimit(q url.Values, fallback int) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 100 {
		return 0, errors.New("limit must be between 1 and 100")
	}
	return n, nil
}

func queryCoordinates(q url.Values) (domain.Coordinates, error) {
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return domain.Coordinates{}, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return domain.Coordinates{}, errors.New("lon must be a number")
	}
	c := domain.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return domain.Coordinates{}, errors.New("coordinates out of range")
	}
	return c, nil
}
