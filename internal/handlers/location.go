package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/dto"
	"FINDME_BACK-END/internal/utils"
)

// LocationHandler accepts coordinate pushes from the client's watch loop
type LocationHandler struct {
	db     *pgxpool.Pool
	config *config.Config
}

// NewLocationHandler creates a new LocationHandler instance
func NewLocationHandler(db *pgxpool.Pool, cfg *config.Config) *LocationHandler {
	return &LocationHandler{db: db, config: cfg}
}

// Update stores a person's latest coordinates
// @Summary Push a location update
// @Description Store the latest coordinates for a person in care. When recordedAt is present, a fix older than the stored one is acknowledged but not applied.
// @Tags location
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LocationUpdateRequest true "Coordinate fix"
// @Success 200 {object} dto.LocationUpdateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing personId, lat, or lon"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Person belongs to another user"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/location/update [post]
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only POST is allowed")
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	var req dto.LocationUpdateRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.PersonID == "" || req.Lat == nil || req.Lon == nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "personId, lat, and lon are required")
		return
	}

	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "personId must be a UUID")
		return
	}

	var recordedAt *time.Time
	if req.RecordedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.RecordedAt)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "recordedAt must be RFC3339")
			return
		}
		recordedAt = &t
	}

	var ownerID uuid.UUID
	var lastLocationAt *time.Time
	err = h.db.QueryRow(r.Context(),
		"SELECT user_id, last_location_at FROM people WHERE id = $1",
		personID).Scan(&ownerID, &lastLocationAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Person not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	if ownerID != userID {
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", "person belongs to another user")
		return
	}

	// A timestamped fix older than what we already hold is a stale retry
	// from the client's queue; acknowledge it without overwriting.
	if recordedAt != nil && lastLocationAt != nil && !recordedAt.After(*lastLocationAt) {
		utils.WriteJSONResponse(w, http.StatusOK, dto.LocationUpdateResponse{
			Message: "Location update ignored: newer fix already stored",
			Applied: false,
		})
		return
	}

	fixTime := time.Now()
	if recordedAt != nil {
		fixTime = *recordedAt
	}

	_, err = h.db.Exec(r.Context(),
		`UPDATE people SET last_lat = $1, last_lon = $2, last_location_at = $3
		  WHERE id = $4 AND user_id = $5`,
		*req.Lat, *req.Lon, fixTime, personID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update location", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.LocationUpdateResponse{
		Message: "Location updated successfully",
		Applied: true,
	})
}
