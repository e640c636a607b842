package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftlink/marketplace-api/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	// CreateWithProfile inserts the account and, when profile is non-nil,
	// its provider profile within a single transaction. The email unique
	// constraint is the duplicate check; a violation surfaces as
	// domain.ErrEmailTaken and nothing is written.
	CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.ProviderProfile) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.ProviderProfile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertAccount = `
        INSERT INTO users (email, password_hash, full_name, phone, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, insertAccount,
		account.Email,
		account.PasswordHash,
		account.FullName,
		account.Phone,
		account.Role,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}

	if profile != nil {
		profile.UserID = account.ID

		const insertProfile = `
            INSERT INTO provider_profiles (user_id, service_type)
            VALUES ($1, $2)
            RETURNING id, created_at`

		if err := tx.QueryRow(ctx, insertProfile,
			profile.UserID,
			profile.ServiceType,
		).Scan(&profile.ID, &profile.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, full_name, phone, role, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanAccount(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, email, password_hash, full_name, phone, role, created_at, updated_at
        FROM users WHERE email=$1`

	return r.scanAccount(ctx, query, email)
}

func (r *accountRepository) scanAccount(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FullName,
		&account.Phone,
		&account.Role,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
