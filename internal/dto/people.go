package dto

// PersonResponse represents a person-in-care record in API responses
type PersonResponse struct {
	ID                string   `json:"id"`
	FullName          string   `json:"full_name"`
	ContactNumber     *string  `json:"contact_number"`
	PreferredHospital *string  `json:"preferred_hospital"`
	MedicalConditions *string  `json:"medical_conditions"`
	ImageURL          *string  `json:"image_url"`
	LastLat           *float64 `json:"last_lat"`
	LastLon           *float64 `json:"last_lon"`
	LastLocationAt    *string  `json:"last_location_at,omitempty"` // RFC3339
	CreatedAt         string   `json:"created_at"`                 // RFC3339
	IsDeleted         bool     `json:"is_deleted"`
	DeletedAt         *string  `json:"deleted_at,omitempty"` // RFC3339
}

// PersonListResponse wraps GET /api/people output
type PersonListResponse struct {
	People []PersonResponse `json:"people"`
}

// PersonCreateResponse wraps POST /api/people output
type PersonCreateResponse struct {
	Person  PersonResponse `json:"person"`
	Message string         `json:"message"`
}

// PersonUpdateResponse wraps PUT /api/people/{id} output
type PersonUpdateResponse struct {
	Person  PersonResponse `json:"person"`
	Message string         `json:"message"`
}
