package utils

import (
	"encoding/json"
	"net/http"

	"FINDME_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with a short error label and a
// human-readable message
func WriteErrorResponse(w http.ResponseWriter, status int, errLabel, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Error:   errLabel,
		Message: message,
	})
}

// DecodeJSONRequest decodes the request body into dst and writes a 400
// response on failure. Callers should return immediately when err != nil.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return err
	}
	return nil
}
