package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"FINDME_BACK-END/internal/dto"
	"FINDME_BACK-END/internal/utils"
)

// HealthHandler exposes liveness and readiness probes
type HealthHandler struct {
	db *pgxpool.Pool
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{db: db}
}

// Livez reports process liveness
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /livez [get]
func (h *HealthHandler) Livez(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Readyz reports readiness, including database connectivity
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	details := map[string]any{"database": "ok"}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		details["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	resp := dto.HealthResponse{Status: "ok", Details: details}
	if status != http.StatusOK {
		resp.Status = "degraded"
	}
	utils.WriteJSONResponse(w, status, resp)
}
