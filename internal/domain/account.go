package domain

import "time"

// Role is an account's fixed category, assigned at registration.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// NormalizeRole coerces arbitrary input to a known role. Anything other
// than the literal "provider" becomes customer.
func NormalizeRole(v string) Role {
	if v == string(RoleProvider) {
		return RoleProvider
	}
	return RoleCustomer
}

// Account is the domain model for registered users of the marketplace.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Phone        string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
