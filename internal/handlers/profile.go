package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"FINDME_BACK-END/internal/config"
	"FINDME_BACK-END/internal/dto"
	"FINDME_BACK-END/internal/storage"
	"FINDME_BACK-END/internal/utils"
)

// ProfileHandler handles the account profile endpoints
type ProfileHandler struct {
	db     *pgxpool.Pool
	images storage.Store
	config *config.Config
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(db *pgxpool.Pool, images storage.Store, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{db: db, images: images, config: cfg}
}

// Handle dispatches by HTTP method for /api/user/profile
func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetProfile(w, r)
	case http.MethodPut:
		h.UpdateProfile(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET and PUT are allowed")
	}
}

// GetProfile returns the current user's profile
// @Summary Get user profile
// @Description Get the authenticated user's account profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/user/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	profile, err := h.fetchProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found for this token")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, profile)
}

// UpdateProfile updates the current user's profile
// @Summary Update user profile
// @Description Partial update of name fields, contact number, and profile image (multipart form)
// @Tags profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param firstName formData string false "First name"
// @Param middleName formData string false "Middle name"
// @Param lastName formData string false "Last name"
// @Param secondLastName formData string false "Second last name"
// @Param contactNumber formData string false "Contact number"
// @Param profileImage formData file false "Profile image (max 10MB)"
// @Success 200 {object} dto.ProfileUpdateResponse "Profile updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/user/profile [put]
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	maxBytes := h.config.Storage.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "expected multipart form data")
		return
	}

	// Build the SET list dynamically: only fields present in the form are
	// updated, everything else keeps its previous value.
	set := []string{}
	args := []any{}
	i := 1

	addField := func(form, col string) {
		if vals, present := r.MultipartForm.Value[form]; present {
			var v any
			if trimmed := strings.TrimSpace(vals[0]); trimmed != "" {
				v = trimmed
			}
			set = append(set, fmt.Sprintf("%s = $%d", col, i))
			args = append(args, v)
			i++
		}
	}

	addField("firstName", "first_name")
	addField("middleName", "middle_name")
	addField("lastName", "last_name")
	addField("secondLastName", "second_last_name")
	addField("contactNumber", "contact_number")

	// Current image URL, needed to drop the old file after a replacement
	var oldImageURL *string
	if err := h.db.QueryRow(r.Context(),
		"SELECT profile_image_url FROM users WHERE id = $1", userID).Scan(&oldImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found", "No account found for this token")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	var newImageURL string
	if file, header, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		newImageURL, err = h.images.Save(r.Context(), file, header.Filename)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store image", err.Error())
			return
		}
		set = append(set, fmt.Sprintf("profile_image_url = $%d", i))
		args = append(args, newImageURL)
		i++
	}

	if len(set) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "no fields to update")
		return
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(set, ", "), i)
	args = append(args, userID)

	if _, err := h.db.Exec(r.Context(), query, args...); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}

	// The old file is orphaned only after the database write succeeded
	if newImageURL != "" && oldImageURL != nil && *oldImageURL != newImageURL {
		go h.deleteImage(*oldImageURL)
	}

	profile, err := h.fetchProfile(r.Context(), userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileUpdateResponse{
		User:    profile,
		Message: "Profile updated successfully",
	})
}

func (h *ProfileHandler) fetchProfile(ctx context.Context, userID uuid.UUID) (dto.ProfileResponse, error) {
	const q = `
SELECT id, email, first_name, middle_name, last_name, second_last_name,
       contact_number, profile_image_url, created_at
  FROM users
 WHERE id = $1`

	var (
		id                             uuid.UUID
		email                          string
		firstName, middleName          *string
		lastName, secondLastName       *string
		contactNumber, profileImageURL *string
		createdAt                      time.Time
	)
	err := h.db.QueryRow(ctx, q, userID).Scan(
		&id, &email, &firstName, &middleName, &lastName, &secondLastName,
		&contactNumber, &profileImageURL, &createdAt,
	)
	if err != nil {
		return dto.ProfileResponse{}, err
	}

	return dto.ProfileResponse{
		ID:              id.String(),
		Email:           email,
		FirstName:       firstName,
		MiddleName:      middleName,
		LastName:        lastName,
		SecondLastName:  secondLastName,
		ContactNumber:   contactNumber,
		ProfileImageURL: profileImageURL,
		CreatedAt:       createdAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h *ProfileHandler) deleteImage(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.images.Delete(ctx, url); err != nil {
		log.Printf("profile: delete image %s failed: %v", url, err)
	}
}
