package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftlink/marketplace-api/internal/domain"
)

// ProviderProfileRepository manages provider profile persistence. Profiles
// are written through AccountRepository.CreateWithProfile; this repository
// only reads.
type ProviderProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.ProviderProfile, error)
}

type providerProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProviderProfileRepository constructs repository.
func NewProviderProfileRepository(pool *pgxpool.Pool) ProviderProfileRepository {
	return &providerProfileRepository{pool: pool}
}

func (r *providerProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.ProviderProfile, error) {
	const query = `
        SELECT id, user_id, service_type, created_at
        FROM provider_profiles WHERE user_id=$1`

	var profile domain.ProviderProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ServiceType,
		&profile.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}
