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
	"FINDME_BACK-END/internal/models"
	"FINDME_BACK-END/internal/storage"
	"FINDME_BACK-END/internal/utils"
)

const personColumns = `id, user_id, full_name, contact_number, preferred_hospital,
       medical_conditions, image_url, last_lat, last_lon, last_location_at,
       created_at, is_deleted, deleted_at`

// PeopleHandler manages person-in-care records. Every operation is scoped to
// the authenticated owner; a record belonging to someone else answers exactly
// like a missing one.
type PeopleHandler struct {
	db     *pgxpool.Pool
	images storage.Store
	config *config.Config
}

// NewPeopleHandler creates a new PeopleHandler instance
func NewPeopleHandler(db *pgxpool.Pool, images storage.Store, cfg *config.Config) *PeopleHandler {
	return &PeopleHandler{db: db, images: images, config: cfg}
}

// Handle dispatches by HTTP method for /api/people
func (h *PeopleHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET and POST are allowed")
	}
}

// HandleByID dispatches for /api/people/{id} and /api/people/{id}/revert
func (h *PeopleHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/people/")
	idPart, action, _ := strings.Cut(rest, "/")

	personID, err := uuid.Parse(idPart)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid person id", "person id must be a UUID")
		return
	}

	switch {
	case action == "revert" && r.Method == http.MethodPost:
		h.Revert(w, r, personID)
	case action != "":
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "unknown people endpoint")
	case r.Method == http.MethodGet:
		h.Get(w, r, personID)
	case r.Method == http.MethodPut:
		h.Update(w, r, personID)
	case r.Method == http.MethodDelete:
		h.SoftDelete(w, r, personID)
	default:
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method Not Allowed", "only GET, PUT, and DELETE are allowed")
	}
}

// List returns the owner's people, newest first
// @Summary List people in care
// @Description List the authenticated user's non-deleted people, newest first
// @Tags people
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PersonListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/people [get]
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	rows, err := h.db.Query(r.Context(),
		`SELECT `+personColumns+`
		   FROM people
		  WHERE user_id = $1 AND is_deleted = FALSE
		  ORDER BY created_at DESC`, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}
	defer rows.Close()

	people := []dto.PersonResponse{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
			return
		}
		people = append(people, toPersonResponse(person))
	}
	if err := rows.Err(); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PersonListResponse{People: people})
}

// Get returns a single person by id
// @Summary Get a person in care
// @Description Get one of the authenticated user's people by id. Soft-deleted records are returned with is_deleted set.
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} dto.PersonResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/people/{id} [get]
func (h *PeopleHandler) Get(w http.ResponseWriter, r *http.Request, personID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	person, err := h.fetchPerson(r.Context(), userID, personID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Person not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toPersonResponse(person))
}

// Create adds a new person in care
// @Summary Create a person in care
// @Description Create a person record (multipart form). Full name is required.
// @Tags people
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param fullName formData string true "Full name"
// @Param contactNumber formData string false "Contact number"
// @Param preferredHospital formData string false "Preferred hospital"
// @Param medicalConditions formData string false "Medical conditions"
// @Param image formData file false "Profile image (max 10MB)"
// @Success 201 {object} dto.PersonCreateResponse
// @Failure 400 {object} dto.ErrorResponse "Missing full name"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/people [post]
func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	fullName := strings.TrimSpace(r.FormValue("fullName"))
	if fullName == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "fullName is required")
		return
	}

	var imageURL *string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		url, err := h.images.Save(r.Context(), file, header.Filename)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store image", err.Error())
			return
		}
		imageURL = &url
	}

	person := models.Person{
		ID:                uuid.New(),
		UserID:            userID,
		FullName:          fullName,
		ContactNumber:     formValuePtr(r, "contactNumber"),
		PreferredHospital: formValuePtr(r, "preferredHospital"),
		MedicalConditions: formValuePtr(r, "medicalConditions"),
		ImageURL:          imageURL,
		CreatedAt:         time.Now(),
	}

	_, err := h.db.Exec(r.Context(),
		`INSERT INTO people (id, user_id, full_name, contact_number, preferred_hospital,
		                     medical_conditions, image_url, created_at, is_deleted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`,
		person.ID, person.UserID, person.FullName, person.ContactNumber,
		person.PreferredHospital, person.MedicalConditions, person.ImageURL, person.CreatedAt)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create person", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.PersonCreateResponse{
		Person:  toPersonResponse(person),
		Message: "Person created successfully",
	})
}

// Update modifies a person in care
// @Summary Update a person in care
// @Description Partial update (multipart form); omitted fields keep their values. A replaced image file is removed after the write commits.
// @Tags people
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Param fullName formData string false "Full name"
// @Param contactNumber formData string false "Contact number"
// @Param preferredHospital formData string false "Preferred hospital"
// @Param medicalConditions formData string false "Medical conditions"
// @Param image formData file false "Profile image (max 10MB)"
// @Success 200 {object} dto.PersonUpdateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/people/{id} [put]
func (h *PeopleHandler) Update(w http.ResponseWriter, r *http.Request, personID uuid.UUID) {
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

	// Ownership check doubles as the old-image lookup
	var oldImageURL *string
	err := h.db.QueryRow(r.Context(),
		"SELECT image_url FROM people WHERE id = $1 AND user_id = $2",
		personID, userID).Scan(&oldImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Person not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	set := []string{}
	args := []any{}
	i := 1

	if vals, present := r.MultipartForm.Value["fullName"]; present {
		fullName := strings.TrimSpace(vals[0])
		if fullName == "" {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "fullName cannot be empty")
			return
		}
		set = append(set, fmt.Sprintf("full_name = $%d", i))
		args = append(args, fullName)
		i++
	}

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

	addField("contactNumber", "contact_number")
	addField("preferredHospital", "preferred_hospital")
	addField("medicalConditions", "medical_conditions")

	var newImageURL string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		newImageURL, err = h.images.Save(r.Context(), file, header.Filename)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to store image", err.Error())
			return
		}
		set = append(set, fmt.Sprintf("image_url = $%d", i))
		args = append(args, newImageURL)
		i++
	}

	if len(set) == 0 {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad Request", "no fields to update")
		return
	}

	query := fmt.Sprintf("UPDATE people SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(set, ", "), i, i+1)
	args = append(args, personID, userID)

	ct, err := h.db.Exec(r.Context(), query, args...)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update person", err.Error())
		return
	}
	if ct.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Person not found")
		return
	}

	if newImageURL != "" && oldImageURL != nil && *oldImageURL != newImageURL {
		go h.deleteImage(*oldImageURL)
	}

	person, err := h.fetchPerson(r.Context(), userID, personID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PersonUpdateResponse{
		Person:  toPersonResponse(person),
		Message: "Person updated successfully",
	})
}

// SoftDelete marks a person as deleted
// @Summary Soft-delete a person in care
// @Description Hide the record from listings; it stays recoverable via revert. The stored image file is removed best-effort.
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/people/{id} [delete]
func (h *PeopleHandler) SoftDelete(w http.ResponseWriter, r *http.Request, personID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	var imageURL *string
	err := h.db.QueryRow(r.Context(),
		"SELECT image_url FROM people WHERE id = $1 AND user_id = $2",
		personID, userID).Scan(&imageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Person not found")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Database error", err.Error())
		return
	}

	_, err = h.db.Exec(r.Context(),
		`UPDATE people SET is_deleted = TRUE, deleted_at = $1
		  WHERE id = $2 AND user_id = $3`,
		time.Now(), personID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete person", err.Error())
		return
	}

	if imageURL != nil {
		go h.deleteImage(*imageURL)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Message: "Person deleted successfully",
	})
}

// Revert restores a soft-deleted person
// @Summary Revert a soft deletion
// @Description Restore a soft-deleted record to the default listing, no matter how long ago it was deleted
// @Tags people
// @Produce json
// @Security BearerAuth
// @Param id path string true "Person ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/people/{id}/revert [post]
func (h *PeopleHandler) Revert(w http.ResponseWriter, r *http.Request, personID uuid.UUID) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "missing user in context")
		return
	}

	ct, err := h.db.Exec(r.Context(),
		`UPDATE people SET is_deleted = FALSE, deleted_at = NULL
		  WHERE id = $1 AND user_id = $2`,
		personID, userID)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to revert person", err.Error())
		return
	}
	if ct.RowsAffected() == 0 {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", "Person not found")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{
		Message: "Person restored successfully",
	})
}

// ---------- helpers ----------

func (h *PeopleHandler) fetchPerson(ctx context.Context, userID, personID uuid.UUID) (models.Person, error) {
	row := h.db.QueryRow(ctx,
		`SELECT `+personColumns+`
		   FROM people
		  WHERE id = $1 AND user_id = $2`, personID, userID)
	return scanPerson(row)
}

func (h *PeopleHandler) deleteImage(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.images.Delete(ctx, url); err != nil {
		log.Printf("people: delete image %s failed: %v", url, err)
	}
}

func scanPerson(row pgx.Row) (models.Person, error) {
	var p models.Person
	err := row.Scan(
		&p.ID, &p.UserID, &p.FullName, &p.ContactNumber, &p.PreferredHospital,
		&p.MedicalConditions, &p.ImageURL, &p.LastLat, &p.LastLon, &p.LastLocationAt,
		&p.CreatedAt, &p.IsDeleted, &p.DeletedAt,
	)
	return p, err
}

func toPersonResponse(p models.Person) dto.PersonResponse {
	resp := dto.PersonResponse{
		ID:                p.ID.String(),
		FullName:          p.FullName,
		ContactNumber:     p.ContactNumber,
		PreferredHospital: p.PreferredHospital,
		MedicalConditions: p.MedicalConditions,
		ImageURL:          p.ImageURL,
		LastLat:           p.LastLat,
		LastLon:           p.LastLon,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339),
		IsDeleted:         p.IsDeleted,
	}
	if p.LastLocationAt != nil {
		s := p.LastLocationAt.UTC().Format(time.RFC3339)
		resp.LastLocationAt = &s
	}
	if p.DeletedAt != nil {
		s := p.DeletedAt.UTC().Format(time.RFC3339)
		resp.DeletedAt = &s
	}
	return resp
}

func formValuePtr(r *http.Request, key string) *string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return &v
	}
	return nil
}
