package domain

import "time"

// DefaultServiceType is assigned when a provider registers without
// declaring a service category.
const DefaultServiceType = "makeup"

// ProviderProfile holds provider-specific data, 1:1 with a provider Account.
type ProviderProfile struct {
	ID          string
	UserID      string
	ServiceType string
	CreatedAt   time.Time
}
