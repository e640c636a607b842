package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/craftlink/marketplace-api/internal/auth"
	"github.com/craftlink/marketplace-api/internal/config"
	"github.com/craftlink/marketplace-api/internal/domain"
	"github.com/craftlink/marketplace-api/internal/events"
	"github.com/craftlink/marketplace-api/internal/repository"
)

// RegisterInput carries registration fields. Role and ServiceType are
// optional; Role is normalized to customer unless it is exactly "provider".
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	Phone       string
	Role        string
	ServiceType string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	profiles   repository.ProviderProfileRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	ProfileRepo repository.ProviderProfileRepository
	Dispatcher  events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account and, for providers, its profile. Both
// writes happen in one transaction; the store's unique constraint on email
// decides duplicates, so there is no check-then-act window.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	role := domain.NormalizeRole(in.Role)

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
	}

	var profile *domain.ProviderProfile
	if role == domain.RoleProvider {
		serviceType := in.ServiceType
		if serviceType == "" {
			serviceType = domain.DefaultServiceType
		}
		profile = &domain.ProviderProfile{ServiceType: serviceType}
	}

	if err := s.accounts.CreateWithProfile(ctx, account, profile); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRegistered,
		AccountID: account.ID,
		Role:      account.Role,
		Timestamp: time.Now(),
		Payload: events.AccountRegisteredPayload{
			Email:       account.Email,
			ServiceType: serviceTypeOf(profile),
		},
	})

	return account, nil
}

// Login authenticates an account and mints a session token embedding the
// account id and role. Unknown email and wrong password are reported
// identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, domain.ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountLoggedIn,
		AccountID: account.ID,
		Role:      account.Role,
		Timestamp: time.Now(),
	})

	return account, token, exp, nil
}

// ProviderProfile loads the profile owned by a provider account.
func (s *AuthService) ProviderProfile(ctx context.Context, accountID string) (*domain.ProviderProfile, error) {
	return s.profiles.GetByUserID(ctx, accountID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func serviceTypeOf(profile *domain.ProviderProfile) string {
	if profile == nil {
		return ""
	}
	return profile.ServiceType
}
