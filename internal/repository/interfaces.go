package repository

import (
	"context"
	"time"

	"github.com/adityakashyap5047/Evix/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user, ErrUserAlreadyExists on duplicate external id
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by internal ID, (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByExternalID retrieves a user by the identity provider's id, (nil, nil) when absent
	GetByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	// UpdateOnboarding stores interests and location and marks onboarding complete
	UpdateOnboarding(ctx context.Context, userID string, interests []string, city, state, country string) error
}

// EventRepository defines the interface for event data access. List methods
// return the page slice plus the total count for the filter.
type EventRepository interface {
	// CreateWithQuota inserts the event; when enforceQuota is set, the
	// organizer's free-event counter is incremented in the same transaction
	// and ErrQuotaExceeded returned once the limit is reached
	CreateWithQuota(ctx context.Context, event *domain.Event, enforceQuota bool) error
	// GetByID retrieves an event by ID, (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// GetBySlug retrieves an event by slug with the organizer preloaded, (nil, nil) when absent
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	// ListByOrganizer lists an organizer's events newest first, including past ones
	ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*domain.Event, int64, error)
	// ListUpcoming lists events starting at or after now
	ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]*domain.Event, int64, error)
	// ListAll lists every event including past ones
	ListAll(ctx context.Context, limit, offset int) ([]*domain.Event, int64, error)
	// ListByCategory lists upcoming events in a category
	ListByCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]*domain.Event, int64, error)
	// ListByLocation lists upcoming events matching any provided location
	// field, case-insensitively
	ListByLocation(ctx context.Context, city, state, country string, now time.Time, limit, offset int) ([]*domain.Event, int64, error)
	// Search lists upcoming events whose title contains the query, case-insensitively
	Search(ctx context.Context, query string, now time.Time, limit int) ([]*domain.Event, error)
	// CategoryCounts returns the number of upcoming events per category
	CategoryCounts(ctx context.Context, now time.Time) ([]domain.CategoryCount, error)
	// DeleteCascade removes the event and its registrations in one
	// transaction; when decrementQuota is set, the organizer's free-event
	// counter is decremented, floored at zero. The returned flag reports
	// whether the floor was hit.
	DeleteCascade(ctx context.Context, eventID, organizerID string, decrementQuota bool) (bool, error)
}

// RegistrationRepository defines the interface for registration data access
type RegistrationRepository interface {
	// Register inserts the registration and increments the event's
	// registration count in one transaction. Fails with ErrEventNotFound,
	// ErrCapacityExceeded, ErrDuplicateRegistration or
	// ErrTicketCodeCollision.
	Register(ctx context.Context, reg *domain.Registration) error
	// Cancel flips the registration to CANCELLED and decrements the event's
	// registration count, floored at zero, in one transaction. The returned
	// flag reports whether the floor was hit.
	Cancel(ctx context.Context, registrationID, userID string) (bool, error)
	// GetByID retrieves a registration by ID, (nil, nil) when absent
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	// GetActiveByEventAndUser retrieves the CONFIRMED registration for an
	// (event, user) pair, (nil, nil) when absent
	GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	// GetByTicketCode retrieves a registration by ticket code, (nil, nil) when absent
	GetByTicketCode(ctx context.Context, ticketCode string) (*domain.Registration, error)
	// ListByUser lists a user's registrations newest first with events preloaded
	ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	// ListByEvent lists all registrations for an event
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	// CheckIn flips a CONFIRMED, not-yet-checked-in ticket to checked in.
	// Fails with ErrTicketNotFound (absent or cancelled) or ErrAlreadyCheckedIn.
	CheckIn(ctx context.Context, ticketCode string, now time.Time) (*domain.Registration, error)
}
