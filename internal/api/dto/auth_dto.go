package dto

import "github.com/craftlink/marketplace-api/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Role        string `json:"role,omitempty"`
	ServiceType string `json:"service_type,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the public projection of an account. The password hash
// never leaves the service.
type AccountResponse struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

// NewAccountResponse projects a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID,
		Email:    account.Email,
		FullName: account.FullName,
		Role:     account.Role,
	}
}

// ProviderProfileResponse is the public projection of a provider profile.
type ProviderProfileResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	ServiceType string `json:"service_type"`
}

// NewProviderProfileResponse projects a domain provider profile.
func NewProviderProfileResponse(profile *domain.ProviderProfile) ProviderProfileResponse {
	return ProviderProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		ServiceType: profile.ServiceType,
	}
}
