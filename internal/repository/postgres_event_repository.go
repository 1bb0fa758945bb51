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

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// eventColumns defines the columns to select for events
// Using COALESCE for nullable string columns to avoid scan errors
const eventColumns = `id, title,
	COALESCE(description, '') as description,
	slug, organizer_id, category,
	COALESCE(tags, '{}') as tags,
	start_date, end_date,
	COALESCE(timezone, '') as timezone,
	location_type,
	COALESCE(venue, '') as venue,
	COALESCE(address, '') as address,
	COALESCE(city, '') as city,
	COALESCE(state, '') as state,
	COALESCE(country, '') as country,
	capacity, ticket_type, ticket_price,
	theme_color,
	COALESCE(cover_image_url, '') as cover_image_url,
	registration_count, created_at, updated_at`

// prefixedEventColumns qualifies eventColumns with an alias for joins
func prefixedEventColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.title,
	COALESCE(%[1]s.description, '') as description,
	%[1]s.slug, %[1]s.organizer_id, %[1]s.category,
	COALESCE(%[1]s.tags, '{}') as tags,
	%[1]s.start_date, %[1]s.end_date,
	COALESCE(%[1]s.timezone, '') as timezone,
	%[1]s.location_type,
	COALESCE(%[1]s.venue, '') as venue,
	COALESCE(%[1]s.address, '') as address,
	COALESCE(%[1]s.city, '') as city,
	COALESCE(%[1]s.state, '') as state,
	COALESCE(%[1]s.country, '') as country,
	%[1]s.capacity, %[1]s.ticket_type, %[1]s.ticket_price,
	%[1]s.theme_color,
	COALESCE(%[1]s.cover_image_url, '') as cover_image_url,
	%[1]s.registration_count, %[1]s.created_at, %[1]s.updated_at`, alias)
}

func scanEventFields(row pgx.Row, event *domain.Event, extra ...interface{}) error {
	dest := []interface{}{
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Slug,
		&event.OrganizerID,
		&event.Category,
		&event.Tags,
		&event.StartDate,
		&event.EndDate,
		&event.Timezone,
		&event.LocationType,
		&event.Venue,
		&event.Address,
		&event.City,
		&event.State,
		&event.Country,
		&event.Capacity,
		&event.TicketType,
		&event.TicketPrice,
		&event.ThemeColor,
		&event.CoverImageURL,
		&event.RegistrationCount,
		&event.CreatedAt,
		&event.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := scanEventFields(rows, event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// CreateWithQuota inserts the event, incrementing the organizer's free-event
// counter in the same transaction when enforceQuota is set. The conditional
// update keeps the quota race-free under concurrent creates.
func (r *PostgresEventRepository) CreateWithQuota(ctx context.Context, event *domain.Event, enforceQuota bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if enforceQuota {
		quotaQuery := `
			UPDATE users
			SET free_events_created = free_events_created + 1, updated_at = $3
			WHERE id = $1 AND deleted_at IS NULL AND free_events_created < $2
		`
		result, err := tx.Exec(ctx, quotaQuery, event.OrganizerID, domain.FreeEventLimit, time.Now())
		if err != nil {
			return fmt.Errorf("failed to increment free event counter: %w", err)
		}
		if result.RowsAffected() == 0 {
			// Distinguish a missing organizer from an exhausted quota
			var exists bool
			if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)", event.OrganizerID).Scan(&exists); err != nil {
				return fmt.Errorf("failed to check organizer: %w", err)
			}
			if !exists {
				return domain.ErrUserNotFound
			}
			return domain.ErrQuotaExceeded
		}
	}

	insertQuery := `
		INSERT INTO events (
			id, title, description, slug, organizer_id, category, tags,
			start_date, end_date, timezone, location_type, venue, address,
			city, state, country, capacity, ticket_type, ticket_price,
			theme_color, cover_image_url, registration_count, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24
		)
	`
	_, err = tx.Exec(ctx, insertQuery,
		event.ID,
		event.Title,
		event.Description,
		event.Slug,
		event.OrganizerID,
		event.Category,
		event.Tags,
		event.StartDate,
		event.EndDate,
		event.Timezone,
		event.LocationType,
		event.Venue,
		event.Address,
		event.City,
		event.State,
		event.Country,
		event.Capacity,
		event.TicketType,
		event.TicketPrice,
		event.ThemeColor,
		event.CoverImageURL,
		event.RegistrationCount,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	event := &domain.Event{}
	if err := scanEventFields(r.pool.QueryRow(ctx, query, id), event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// GetBySlug retrieves an event by slug with the organizer preloaded
func (r *PostgresEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			u.id, u.name, COALESCE(u.image_url, '') as organizer_image_url
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		WHERE e.slug = $1
	`, prefixedEventColumns("e"))

	event := &domain.Event{}
	organizer := &domain.User{}
	err := scanEventFields(r.pool.QueryRow(ctx, query, slug), event,
		&organizer.ID, &organizer.Name, &organizer.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}
	event.Organizer = organizer
	return event, nil
}

// ListByOrganizer lists an organizer's events newest first, including past ones
func (r *PostgresEventRepository) ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*domain.Event, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM events WHERE organizer_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, organizerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, organizerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListUpcoming lists events starting at or after now, soonest-created last
func (r *PostgresEventRepository) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM events WHERE start_date >= $1`
	if err := r.pool.QueryRow(ctx, countQuery, now).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE start_date >= $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list upcoming events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListAll lists every event including past ones
func (r *PostgresEventRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Event, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		ORDER BY start_date DESC
		LIMIT $1 OFFSET $2
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByCategory lists upcoming events in a category
func (r *PostgresEventRepository) ListByCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM events WHERE category = $1 AND start_date >= $2`
	if err := r.pool.QueryRow(ctx, countQuery, category, now).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE category = $1 AND start_date >= $2
		ORDER BY start_date DESC
		LIMIT $3 OFFSET $4
	`, eventColumns)

	rows, err := r.pool.Query(ctx, query, category, now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events by category: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByLocation lists upcoming events matching any provided location field,
// case-insensitively
func (r *PostgresEventRepository) ListByLocation(ctx context.Context, city, state, country string, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	where := `(
		($1 <> '' AND LOWER(city) = LOWER($1)) OR
		($2 <> '' AND LOWER(state) = LOWER($2)) OR
		($3 <> '' AND LOWER(country) = LOWER($3))
	) AND start_date >= $4`

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events WHERE %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, city, state, country, now).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE %s
		ORDER BY start_date DESC
		LIMIT $5 OFFSET $6
	`, eventColumns, where)

	rows, err := r.pool.Query(ctx, query, city, state, country, now, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events by location: %w", err)
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// Search lists upcoming events whose title contains the query, case-insensitively
func (r *PostgresEventRepository) Search(ctx context.Context, query string, now time.Time, limit int) ([]*domain.Event, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE title ILIKE $1 AND start_date >= $2
		ORDER BY start_date DESC
		LIMIT $3
	`, eventColumns)

	rows, err := r.pool.Query(ctx, sql, "%"+query+"%", now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CategoryCounts returns the number of upcoming events per category
func (r *PostgresEventRepository) CategoryCounts(ctx context.Context, now time.Time) ([]domain.CategoryCount, error) {
	query := `
		SELECT category, COUNT(*)
		FROM events
		WHERE start_date >= $1
		GROUP BY category
		ORDER BY COUNT(*) DESC, category
	`
	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()

	var counts []domain.CategoryCount
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// DeleteCascade removes the event and its registrations in one transaction,
// rolling back the organizer's free-event counter when decrementQuota is set.
// The returned flag reports whether the counter decrement hit the zero floor.
func (r *PostgresEventRepository) DeleteCascade(ctx context.Context, eventID, organizerID string, decrementQuota bool) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID); err != nil {
		return false, fmt.Errorf("failed to delete registrations: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1 AND organizer_id = $2`, eventID, organizerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return false, domain.ErrEventNotFound
	}

	floored := false
	if decrementQuota {
		// Lock the counter row so the floor check and decrement are atomic
		var current int
		err := tx.QueryRow(ctx, `SELECT free_events_created FROM users WHERE id = $1 FOR UPDATE`, organizerID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return false, domain.ErrUserNotFound
			}
			return false, fmt.Errorf("failed to lock free event counter: %w", err)
		}
		floored = current == 0

		_, err = tx.Exec(ctx, `
			UPDATE users
			SET free_events_created = GREATEST(free_events_created - 1, 0), updated_at = $2
			WHERE id = $1
		`, organizerID, time.Now())
		if err != nil {
			return false, fmt.Errorf("failed to decrement free event counter: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return floored, nil
}

// isUniqueViolation reports whether err is a unique constraint violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
