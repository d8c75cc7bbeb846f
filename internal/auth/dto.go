package auth

import (
	"github.com/shoplane/shoplane-backend/internal/profiles"
	"github.com/shoplane/shoplane-backend/pkg/types"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest onboards a customer account.
type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required"`
	Phone    *string `json:"phone,omitempty"`
}

// VendorRegisterRequest onboards a vendor account together with its
// first shop.
type VendorRegisterRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=8"`
	FullName    string         `json:"full_name" validate:"required"`
	Phone       *string        `json:"phone,omitempty"`
	ShopName    string         `json:"shop_name" validate:"required"`
	Description *string        `json:"description,omitempty"`
	Timezone    string         `json:"timezone"`
	Address     *types.Address `json:"address,omitempty"`
}

// RefreshRequest rotates a refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the minted credential set.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse contains the tokens and profile produced by a
// successful login or registration.
type LoginResponse struct {
	TokenPair
	User *profiles.ProfileDTO `json:"user"`
}
