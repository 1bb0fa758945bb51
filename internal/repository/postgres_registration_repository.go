package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityakashyap5047/Evix/internal/domain"
)

// Unique constraints backing the registration invariants
const (
	ticketCodeConstraint         = "registrations_ticket_code_key"
	activeRegistrationConstraint = "registrations_active_event_user_idx"
)

// PostgresRegistrationRepository implements RegistrationRepository using PostgreSQL
type PostgresRegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRegistrationRepository creates a new PostgresRegistrationRepository
func NewPostgresRegistrationRepository(pool *pgxpool.Pool) *PostgresRegistrationRepository {
	return &PostgresRegistrationRepository{pool: pool}
}

const registrationColumns = `id, event_id, user_id, attendee_name, attendee_email,
	ticket_code, checked_in, checked_in_at, status, registered_at`

func scanRegistration(row pgx.Row, extra ...interface{}) (*domain.Registration, error) {
	reg := &domain.Registration{}
	dest := []interface{}{
		&reg.ID,
		&reg.EventID,
		&reg.UserID,
		&reg.AttendeeName,
		&reg.AttendeeEmail,
		&reg.TicketCode,
		&reg.CheckedIn,
		&reg.CheckedInAt,
		&reg.Status,
		&reg.RegisteredAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register inserts the registration and increments the event's registration
// count in one transaction. The conditional increment admits at most
// capacity attendees even under concurrent registrations; the partial unique
// index rejects a second CONFIRMED registration per (event, user).
func (r *PostgresRegistrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Capacity gate: NULL capacity counts as zero, which blocks registration
	incrementQuery := `
		UPDATE events
		SET registration_count = registration_count + 1, updated_at = $2
		WHERE id = $1 AND registration_count < COALESCE(capacity, 0)
	`
	result, err := tx.Exec(ctx, incrementQuery, reg.EventID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment registration count: %w", err)
	}
	if result.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", reg.EventID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check event: %w", err)
		}
		if !exists {
			return domain.ErrEventNotFound
		}
		return domain.ErrCapacityExceeded
	}

	insertQuery := `
		INSERT INTO registrations (
			id, event_id, user_id, attendee_name, attendee_email,
			ticket_code, checked_in, checked_in_at, status, registered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, insertQuery,
		reg.ID,
		reg.EventID,
		reg.UserID,
		reg.AttendeeName,
		reg.AttendeeEmail,
		reg.TicketCode,
		reg.CheckedIn,
		reg.CheckedInAt,
		reg.Status,
		reg.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err, activeRegistrationConstraint) {
			return domain.ErrDuplicateRegistration
		}
		if isUniqueViolation(err, ticketCodeConstraint) {
			return domain.ErrTicketCodeCollision
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Cancel flips the registration to CANCELLED and decrements the event's
// registration count, floored at zero, in one transaction. The returned flag
// reports whether the floor was hit, which would mean the count had drifted.
func (r *PostgresRegistrationRepository) Cancel(ctx context.Context, registrationID, userID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var eventID, ownerID, status string
	err = tx.QueryRow(ctx, `
		SELECT event_id, user_id, status FROM registrations
		WHERE id = $1
		FOR UPDATE
	`, registrationID).Scan(&eventID, &ownerID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrRegistrationNotFound
		}
		return false, fmt.Errorf("failed to load registration: %w", err)
	}
	if ownerID != userID {
		return false, domain.ErrNotRegistrationOwner
	}
	if status == domain.RegistrationCancelled {
		return false, domain.ErrRegistrationCancelled
	}

	if _, err := tx.Exec(ctx, `
		UPDATE registrations SET status = $2 WHERE id = $1
	`, registrationID, domain.RegistrationCancelled); err != nil {
		return false, fmt.Errorf("failed to cancel registration: %w", err)
	}

	// Lock the counter row so the floor check and decrement are atomic
	var current int
	if err := tx.QueryRow(ctx, `
		SELECT registration_count FROM events WHERE id = $1 FOR UPDATE
	`, eventID).Scan(&current); err != nil {
		return false, fmt.Errorf("failed to lock registration count: %w", err)
	}
	floored := current == 0

	if _, err := tx.Exec(ctx, `
		UPDATE events
		SET registration_count = GREATEST(registration_count - 1, 0), updated_at = $2
		WHERE id = $1
	`, eventID, time.Now()); err != nil {
		return false, fmt.Errorf("failed to decrement registration count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return floored, nil
}

// GetByID retrieves a registration by ID
func (r *PostgresRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE id = $1`, registrationColumns)
	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// GetActiveByEventAndUser retrieves the CONFIRMED registration for an
// (event, user) pair
func (r *PostgresRegistrationRepository) GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM registrations
		WHERE event_id = $1 AND user_id = $2 AND status = $3
	`, registrationColumns)
	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, eventID, userID, domain.RegistrationConfirmed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

// ListByUser lists a user's registrations newest first with events preloaded
func (r *PostgresRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := fmt.Sprintf(`
		SELECT r.id, r.event_id, r.user_id, r.attendee_name, r.attendee_email,
			r.ticket_code, r.checked_in, r.checked_in_at, r.status, r.registered_at,
			%s
		FROM registrations r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1
		ORDER BY r.registered_at DESC
	`, prefixedEventColumns("e"))

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg := &domain.Registration{}
		event := &domain.Event{}
		dest := []interface{}{
			&reg.ID,
			&reg.EventID,
			&reg.UserID,
			&reg.AttendeeName,
			&reg.AttendeeEmail,
			&reg.TicketCode,
			&reg.CheckedIn,
			&reg.CheckedInAt,
			&reg.Status,
			&reg.RegisteredAt,
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
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if event.Tags == nil {
			event.Tags = []string{}
		}
		reg.Event = event
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// ListByEvent lists all registrations for an event, newest first
func (r *PostgresRegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at DESC
	`, registrationColumns)

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// CheckIn flips a CONFIRMED, not-yet-checked-in ticket to checked in. The
// conditional update makes a concurrent double scan lose cleanly.
func (r *PostgresRegistrationRepository) CheckIn(ctx context.Context, ticketCode string, now time.Time) (*domain.Registration, error) {
	query := fmt.Sprintf(`
		UPDATE registrations
		SET checked_in = true, checked_in_at = $2
		WHERE ticket_code = $1 AND status = $3 AND checked_in = false
		RETURNING %s
	`, registrationColumns)

	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, ticketCode, now, domain.RegistrationConfirmed))
	if err == nil {
		return reg, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	// Nothing updated: diagnose which rule rejected the scan
	existing, err := r.GetByTicketCode(ctx, ticketCode)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.Status != domain.RegistrationConfirmed {
		return nil, domain.ErrTicketNotFound
	}
	return nil, domain.ErrAlreadyCheckedIn
}

// GetByTicketCode retrieves a registration by ticket code
func (r *PostgresRegistrationRepository) GetByTicketCode(ctx context.Context, ticketCode string) (*domain.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE ticket_code = $1`, registrationColumns)
	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, ticketCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration by ticket code: %w", err)
	}
	return reg, nil
}
