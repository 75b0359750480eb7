package transport

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DealerResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contactPerson,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Address       *string   `json:"address,omitempty"`
}

type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	Email        string          `json:"email"`
	Name         *string         `json:"name,omitempty"`
	Role         string          `json:"role"`
	LastSignedIn *string         `json:"lastSignedIn,omitempty"`
	Dealer       *DealerResponse `json:"dealer,omitempty"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}
