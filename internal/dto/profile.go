package dto

// ProfileResponse represents the account profile returned by GET /api/user/profile
type ProfileResponse struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	FirstName       *string `json:"first_name"`
	MiddleName      *string `json:"middle_name"`
	LastName        *string `json:"last_name"`
	SecondLastName  *string `json:"second_last_name"`
	ContactNumber   *string `json:"contact_number"`
	ProfileImageURL *string `json:"profile_image_url"`
	CreatedAt       string  `json:"created_at"` // RFC3339
}

// ProfileUpdateResponse wraps the refreshed profile after PUT /api/user/profile
type ProfileUpdateResponse struct {
	User    ProfileResponse `json:"user"`
	Message string          `json:"message"`
}
