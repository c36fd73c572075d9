package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"AIRESCAPE_BACK-END/internal/dto"
	"AIRESCAPE_BACK-END/internal/utils"
)

// HealthHandler handles health check related requests
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Index greets API clients
// @Summary API index
// @Tags health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Welcome to the AirEscape RESTful API"})
}

// HealthCheck handles basic health check (no database)
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck handles readiness check (includes database connectivity)
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:  "degraded",
			Details: map[string]any{"db": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:  "ready",
		Details: map[string]any{"db": "ok"},
	})
}
