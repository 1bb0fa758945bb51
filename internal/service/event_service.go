package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/internal/repository"
	"github.com/adityakashyap5047/Evix/pkg/logger"
	"github.com/adityakashyap5047/Evix/pkg/telemetry"
)

// maxPageSize caps the page size accepted from clients
const maxPageSize = 100

// eventService implements EventService
type eventService struct {
	eventRepo repository.EventRepository
	log       *logger.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo repository.EventRepository, log *logger.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		log:       log,
	}
}

// Create creates a new event, enforcing the free-plan quota and theme gate
func (s *eventService) Create(ctx context.Context, organizer *domain.User, req *dto.CreateEventRequest) (*domain.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.event.create")
	defer span.End()

	span.SetAttributes(attribute.String("organizer_id", organizer.ID))

	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}

	themeColor := req.ThemeColor
	if themeColor == "" {
		themeColor = domain.DefaultThemeColor
	}
	if themeColor != domain.DefaultThemeColor && !organizer.IsPro() {
		span.SetStatus(codes.Error, "theme restricted")
		return nil, domain.ErrFeatureRestricted
	}

	now := time.Now()
	event := &domain.Event{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		Slug:          generateSlug(req.Title, now),
		OrganizerID:   organizer.ID,
		Category:      req.Category,
		Tags:          req.Tags,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Timezone:      req.Timezone,
		LocationType:  req.LocationType,
		Venue:         req.Venue,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		Capacity:      req.Capacity,
		TicketType:    req.TicketType,
		TicketPrice:   req.TicketPrice,
		ThemeColor:    themeColor,
		CoverImageURL: req.CoverImageURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if event.Tags == nil {
		event.Tags = []string{}
	}

	// The quota counter only moves for FREE-plan organizers
	if err := s.eventRepo.CreateWithQuota(ctx, event, !organizer.IsPro()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return event, nil
}

// GetBySlug retrieves an event by slug with the organizer preloaded
func (s *eventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

// ListMine lists the organizer's own events, including past ones
func (s *eventService) ListMine(ctx context.Context, organizerID string, page, limit int) ([]*domain.Event, int64, error) {
	limit, offset, err := pageBounds(page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.eventRepo.ListByOrganizer(ctx, organizerID, limit, offset)
}

// ListUpcoming lists upcoming events
func (s *eventService) ListUpcoming(ctx context.Context, page, limit int) ([]*domain.Event, int64, error) {
	limit, offset, err := pageBounds(page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.eventRepo.ListUpcoming(ctx, time.Now(), limit, offset)
}

// ListAll lists every event including past ones
func (s *eventService) ListAll(ctx context.Context, page, limit int) ([]*domain.Event, int64, error) {
	limit, offset, err := pageBounds(page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.eventRepo.ListAll(ctx, limit, offset)
}

// ListByCategory lists upcoming events in a category
func (s *eventService) ListByCategory(ctx context.Context, category string, page, limit int) ([]*domain.Event, int64, error) {
	limit, offset, err := pageBounds(page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.eventRepo.ListByCategory(ctx, category, time.Now(), limit, offset)
}

// ListByLocation lists upcoming events matching any provided location field
func (s *eventService) ListByLocation(ctx context.Context, city, state, country string, page, limit int) ([]*domain.Event, int64, error) {
	limit, offset, err := pageBounds(page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.eventRepo.ListByLocation(ctx, city, state, country, time.Now(), limit, offset)
}

// Search lists upcoming events whose title contains the query
func (s *eventService) Search(ctx context.Context, query string, limit int) ([]*domain.Event, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, domain.ErrQueryTooShort
	}
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.eventRepo.Search(ctx, query, time.Now(), limit)
}

// CategoryCounts returns the number of upcoming events per category
func (s *eventService) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.eventRepo.CategoryCounts(ctx, time.Now())
}

// Delete removes the organizer's event and all its registrations. For
// FREE-plan organizers the quota counter is handed back.
func (s *eventService) Delete(ctx context.Context, eventID string, organizer *domain.User) error {
	ctx, span := telemetry.StartSpan(ctx, "service.event.delete")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("organizer_id", organizer.ID),
	)

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if event == nil {
		return domain.ErrEventNotFound
	}
	if event.OrganizerID != organizer.ID {
		span.SetStatus(codes.Error, "not owner")
		return domain.ErrNotEventOwner
	}

	floored, err := s.eventRepo.DeleteCascade(ctx, eventID, organizer.ID, !organizer.IsPro())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if floored {
		s.log.Warn("free event counter was already zero on delete",
			zap.String("event_id", eventID),
			zap.String("organizer_id", organizer.ID),
		)
	}
	return nil
}

var slugHyphens = regexp.MustCompile(`-+`)

// generateSlug builds a URL-friendly slug from the title. Only ASCII
// lowercase letters and digits survive; everything else, non-Latin script
// included, collapses into hyphens. The millisecond suffix keeps slugs
// unique without a lookup.
func generateSlug(title string, now time.Time) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(slugHyphens.ReplaceAllString(b.String(), "-"), "-")
	if slug == "" {
		slug = "event"
	}
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}

// pageBounds validates page-based pagination and converts it to limit/offset
func pageBounds(page, limit int) (int, int, error) {
	if page < 1 || limit < 1 {
		return 0, 0, domain.ErrInvalidPagination
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return limit, (page - 1) * limit, nil
}
