package handlers

import (
	"context"
	"errors"
	"net/http"
	"route-decision-service/internal/adapters/geocode"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/domain"
	"route-decision-service/internal/platform/obs"
	"route-decision-service/internal/report"
	"route-decision-service/internal/services"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

var errMissingPlaces = errors.New("start and end are required")

type PlanHandler struct {
	Planner         *services.TripPlanner
	DefaultStart    string
	DefaultEnd      string
	DefaultStrategy string
}

// Plan resolves the requested places, chooses a route and optionally
// simulates driving it.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.plan(r.Context(), req)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Report runs the same pipeline as Plan from query parameters and renders
// the result as an HTML page.
func (h *PlanHandler) Report(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	req := dto.PlanRequest{
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Strategy: q.Get("strategy"),
		Traffic:  q.Get("traffic"),
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "seed must be an integer")
			return
		}
		req.Seed = &seed
	}
	if raw := q.Get("simulate"); raw != "" {
		sim, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "simulate must be a boolean")
			return
		}
		req.Simulate = sim
	}

	res, err := h.plan(r.Context(), req)
	if err != nil {
		writePlanError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := report.Render(w, res, time.Now()); err != nil {
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("render report failed")
	}
}

func (h *PlanHandler) plan(ctx context.Context, req dto.PlanRequest) (dto.PlanResponse, error) {
	start := firstNonEmpty(req.Start, h.DefaultStart)
	end := firstNonEmpty(req.End, h.DefaultEnd)
	if start == "" || end == "" {
		return dto.PlanResponse{}, errMissingPlaces
	}

	decision, err := h.Planner.PlanTrip(ctx, services.PlanTripRequest{
		Start:    start,
		End:      end,
		Strategy: firstNonEmpty(req.Strategy, h.DefaultStrategy),
		Seed:     req.Seed,
	})
	if err != nil {
		return dto.PlanResponse{}, err
	}

	var vehicle *domain.Vehicle
	if req.Simulate {
		vehicle = domain.NewVehicle(decision.Start.Name, decision.End.Name)
		err := services.ExecuteRoute(ctx, vehicle, decision.Chosen, h.Planner.Routes().CostModel(), services.ExecuteOptions{
			Traffic:      services.ParseTrafficCondition(req.Traffic),
			Intermediate: 3,
		})
		if err != nil {
			return dto.PlanResponse{}, err
		}
	}

	return dto.NewPlanResponse(decision, vehicle), nil
}

func writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errMissingPlaces):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, geocode.ErrPlaceNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "planning timed out")
	default:
		log.Error().Str("req_id", obs.RequestID(r.Context())).Err(err).Msg("plan trip failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
