package handlers

import (
	"net/http"
	"route-decision-service/internal/api/dto"
	"route-decision-service/internal/services"
)

type StrategyHandler struct {
	Table *services.StrategyTable
	// Default is the canonical strategy name used when a plan request names none.
	Default services.Strategy
}

func (h *StrategyHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	strategies := h.Table.Strategies()
	res := dto.ListStrategiesResponse{
		Default:    string(h.Default),
		Strategies: make([]dto.StrategyResponse, 0, len(strategies)),
	}
	for _, s := range strategies {
		wts, _ := h.Table.Weights(s)
		res.Strategies = append(res.Strategies, dto.StrategyResponse{
			Name:    string(s),
			Weights: dto.NewWeightsResponse(wts),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
