package dto

import "encoding/json"

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePreferencesRequest replaces the caller's settings document.
type UpdatePreferencesRequest struct {
	Settings json.RawMessage `json:"settings" validate:"required"`
}

// ActivityQuery limits the activity listing.
type ActivityQuery struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=200"`
}
