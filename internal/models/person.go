package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents a "person in care" record owned by a single user.
// Soft-deleted rows stay in the table with IsDeleted set; default listings
// exclude them and Revert clears the flag again.
type Person struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	UserID            uuid.UUID  `json:"user_id" db:"user_id"`
	FullName          string     `json:"full_name" db:"full_name"`
	ContactNumber     *string    `json:"contact_number" db:"contact_number"`
	PreferredHospital *string    `json:"preferred_hospital" db:"preferred_hospital"`
	MedicalConditions *string    `json:"medical_conditions" db:"medical_conditions"`
	ImageURL          *string    `json:"image_url" db:"image_url"`
	LastLat           *float64   `json:"last_lat" db:"last_lat"`
	LastLon           *float64   `json:"last_lon" db:"last_lon"`
	LastLocationAt    *time.Time `json:"last_location_at" db:"last_location_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	IsDeleted         bool       `json:"is_deleted" db:"is_deleted"`
	DeletedAt         *time.Time `json:"deleted_at" db:"deleted_at"`
}
