package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the system
type User struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	FirstName       *string   `json:"first_name" db:"first_name"`
	MiddleName      *string   `json:"middle_name" db:"middle_name"`
	LastName        *string   `json:"last_name" db:"last_name"`
	SecondLastName  *string   `json:"second_last_name" db:"second_last_name"`
	ContactNumber   *string   `json:"contact_number" db:"contact_number"`
	ProfileImageURL *string   `json:"profile_image_url" db:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
