package dto

// LocationUpdateRequest is pushed by the client's background watch loop.
// Lat/Lon are pointers so a missing coordinate can be told apart from 0.
// RecordedAt is optional; when present, writes older than the stored
// coordinates are dropped instead of applied.
type LocationUpdateRequest struct {
	PersonID   string   `json:"personId" validate:"required"`
	Lat        *float64 `json:"lat" validate:"required"`
	Lon        *float64 `json:"lon" validate:"required"`
	RecordedAt *string  `json:"recordedAt,omitempty"` // RFC3339
}

// LocationUpdateResponse confirms a coordinate write
type LocationUpdateResponse struct {
	Message string `json:"message"`
	Applied bool   `json:"applied"`
}
