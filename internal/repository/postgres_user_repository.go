package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityakashyap5047/Evix/internal/domain"
)

const pgUniqueViolationCode = "23505"

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns defines the columns to select for users
// Using COALESCE for nullable string columns to avoid scan errors
const userColumns = `id, external_id, name,
	COALESCE(email, '') as email,
	COALESCE(image_url, '') as image_url,
	plan, free_events_created,
	COALESCE(interests, '{}') as interests,
	COALESCE(city, '') as city,
	COALESCE(state, '') as state,
	COALESCE(country, '') as country,
	has_completed_onboarding, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Name,
		&user.Email,
		&user.ImageURL,
		&user.Plan,
		&user.FreeEventsCreated,
		&user.Interests,
		&user.City,
		&user.State,
		&user.Country,
		&user.HasCompletedOnboarding,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}
	return user, nil
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, external_id, name, email, image_url, plan, free_events_created,
			interests, city, state, country, has_completed_onboarding,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.ExternalID,
		user.Name,
		user.Email,
		user.ImageURL,
		user.Plan,
		user.FreeEventsCreated,
		user.Interests,
		user.City,
		user.State,
		user.Country,
		user.HasCompletedOnboarding,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by internal ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted_at IS NULL`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByExternalID retrieves a user by the identity provider's id
func (r *PostgresUserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE external_id = $1 AND deleted_at IS NULL`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}
	return user, nil
}

// UpdateOnboarding stores interests and location and marks onboarding complete
func (r *PostgresUserRepository) UpdateOnboarding(ctx context.Context, userID string, interests []string, city, state, country string) error {
	query := `
		UPDATE users SET
			interests = $2, city = $3, state = $4, country = $5,
			has_completed_onboarding = true, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query, userID, interests, city, state, country, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update onboarding: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
