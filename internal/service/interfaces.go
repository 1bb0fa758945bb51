package service

import (
	"context"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
)

// UserService defines the interface for account business logic
type UserService interface {
	// ResolveExternal maps the identity provider's id to the platform account
	ResolveExternal(ctx context.Context, externalID string) (*domain.User, error)
	// CreateFromWebhook provisions an account from a signup webhook, idempotently
	CreateFromWebhook(ctx context.Context, data *dto.WebhookUserData) (*domain.User, error)
	// CompleteOnboarding stores interests and location and marks onboarding complete
	CompleteOnboarding(ctx context.Context, userID string, req *dto.OnboardingRequest) (*domain.User, error)
}

// EventService defines the interface for event business logic
type EventService interface {
	// Create creates a new event, enforcing the free-plan quota and theme gate
	Create(ctx context.Context, organizer *domain.User, req *dto.CreateEventRequest) (*domain.Event, error)
	// GetBySlug retrieves an event by slug with the organizer preloaded
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	// ListMine lists the organizer's own events, including past ones
	ListMine(ctx context.Context, organizerID string, page, limit int) ([]*domain.Event, int64, error)
	// ListUpcoming lists upcoming events
	ListUpcoming(ctx context.Context, page, limit int) ([]*domain.Event, int64, error)
	// ListAll lists every event including past ones
	ListAll(ctx context.Context, page, limit int) ([]*domain.Event, int64, error)
	// ListByCategory lists upcoming events in a category
	ListByCategory(ctx context.Context, category string, page, limit int) ([]*domain.Event, int64, error)
	// ListByLocation lists upcoming events matching any provided location field
	ListByLocation(ctx context.Context, city, state, country string, page, limit int) ([]*domain.Event, int64, error)
	// Search lists upcoming events whose title contains the query
	Search(ctx context.Context, query string, limit int) ([]*domain.Event, error)
	// CategoryCounts returns the number of upcoming events per category
	CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error)
	// Delete removes the organizer's event and all its registrations
	Delete(ctx context.Context, eventID string, organizer *domain.User) error
}

// RegistrationService defines the interface for registration business logic
type RegistrationService interface {
	// Register registers the user for an event and issues a ticket
	Register(ctx context.Context, eventID string, user *domain.User, req *dto.RegisterRequest) (*domain.Registration, error)
	// Cancel cancels the user's registration and frees the slot
	Cancel(ctx context.Context, registrationID, userID string) error
	// Get retrieves the user's own registration
	Get(ctx context.Context, registrationID, userID string) (*domain.Registration, error)
	// Status retrieves the user's active registration for an event, (nil, nil)
	// when not registered
	Status(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	// ListMine lists the user's registrations with events preloaded
	ListMine(ctx context.Context, userID string) ([]*domain.Registration, error)
	// ListForEvent lists an event's registrations for its organizer
	ListForEvent(ctx context.Context, eventID, organizerID string) ([]*domain.Registration, error)
	// CheckIn marks a ticket as used at the door, organizer only
	CheckIn(ctx context.Context, organizerID, ticketCode string) (*domain.Registration, error)
}

// DiscoveryService defines the interface for the personalized discovery feed
type DiscoveryService interface {
	// Featured lists the upcoming events with the most registrations
	Featured(ctx context.Context, limit int) ([]*domain.Event, error)
	// ForYou lists upcoming events with the user's interest categories first
	ForYou(ctx context.Context, user *domain.User, page, limit int) ([]*domain.Event, int64, error)
}

// ImageService defines the interface for cover image search
type ImageService interface {
	// Search searches stock photos for event cover images
	Search(ctx context.Context, query string, page, perPage int) (*dto.ImageSearchResponse, error)
}
