package dto

import "time"

// LoginRequest captures credential input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
}

// CheckEmailRequest asks whether an email belongs to a listed company or an account.
type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RegisterRequest captures self-service registration of a new company and its account.
type RegisterRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	ConfirmPassword string  `json:"confirm_password" validate:"required"`
	CompanyName     string  `json:"company_name" validate:"required,max=200"`
	Sector          string  `json:"sector" validate:"max=100"`
	Description     string  `json:"description" validate:"max=2000"`
	WebsiteURL      *string `json:"website_url,omitempty" validate:"omitempty,max=300"`
	ContactInfo     *string `json:"contact_info,omitempty" validate:"omitempty,max=500"`
}

// ClaimRequest creates an account for a company already listed in the directory.
type ClaimRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// UserResponse represents user data returned to clients.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
