package service

import (
	"context"
	"sort"
	"time"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/repository"
)

// featuredWindow is how many upcoming events are ranked for the featured strip
const featuredWindow = 50

// defaultFeaturedLimit is the featured strip size when the client sends none
const defaultFeaturedLimit = 6

// discoveryService implements DiscoveryService
type discoveryService struct {
	eventRepo repository.EventRepository
}

// NewDiscoveryService creates a new DiscoveryService
func NewDiscoveryService(eventRepo repository.EventRepository) DiscoveryService {
	return &discoveryService{eventRepo: eventRepo}
}

// Featured lists the upcoming events with the most registrations. Ranking is
// done over the nearest upcoming events so a sold-out show next year does not
// crowd out this week's.
func (s *discoveryService) Featured(ctx context.Context, limit int) ([]*domain.Event, error) {
	if limit < 1 {
		limit = defaultFeaturedLimit
	}
	if limit > featuredWindow {
		limit = featuredWindow
	}

	events, _, err := s.eventRepo.ListUpcoming(ctx, time.Now(), featuredWindow, 0)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].RegistrationCount > events[j].RegistrationCount
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// ForYou lists upcoming events with the user's interest categories first.
// The partition is stable, so within each half the soonest-first order from
// storage is preserved.
func (s *discoveryService) ForYou(ctx context.Context, user *domain.User, page, limit int) ([]*domain.Event, int64, error) {
	limit, offset, err := pageBounds(page, limit)
	if err != nil {
		return nil, 0, err
	}

	events, total, err := s.eventRepo.ListUpcoming(ctx, time.Now(), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if user == nil || len(user.Interests) == 0 {
		return events, total, nil
	}

	sort.SliceStable(events, func(i, j int) bool {
		return user.HasInterest(events[i].Category) && !user.HasInterest(events[j].Category)
	})
	return events, total, nil
}
