package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
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

const ticketCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// registrationService implements RegistrationService
type registrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	log              *logger.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	log *logger.Logger,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		log:              log,
	}
}

// Register registers the user for an event and issues a ticket. The capacity
// and duplicate checks run inside the storage transaction, so concurrent
// requests for the last slot resolve to exactly one winner.
func (s *registrationService) Register(ctx context.Context, eventID string, user *domain.User, req *dto.RegisterRequest) (*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.register")
	defer span.End()

	span.SetAttributes(
		attribute.String("event_id", eventID),
		attribute.String("user_id", user.ID),
	)

	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}

	reg := &domain.Registration{
		ID:            uuid.New().String(),
		EventID:       eventID,
		UserID:        user.ID,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		Status:        domain.RegistrationConfirmed,
		RegisteredAt:  time.Now(),
	}

	// One retry covers the astronomically rare ticket code collision
	for attempt := 0; attempt < 2; attempt++ {
		code, err := generateTicketCode(time.Now())
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		reg.TicketCode = code

		err = s.registrationRepo.Register(ctx, reg)
		if errors.Is(err, domain.ErrTicketCodeCollision) {
			s.log.Warn("ticket code collision, regenerating", zap.String("event_id", eventID))
			continue
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		return reg, nil
	}
	return nil, domain.ErrTicketCodeCollision
}

// Cancel cancels the user's registration and frees the slot
func (s *registrationService) Cancel(ctx context.Context, registrationID, userID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.cancel")
	defer span.End()

	span.SetAttributes(attribute.String("registration_id", registrationID))

	floored, err := s.registrationRepo.Cancel(ctx, registrationID, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if floored {
		s.log.Warn("registration count was already zero on cancel",
			zap.String("registration_id", registrationID),
		)
	}
	return nil
}

// Get retrieves the user's own registration
func (s *registrationService) Get(ctx context.Context, registrationID, userID string) (*domain.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return nil, domain.ErrNotRegistrationOwner
	}
	return reg, nil
}

// Status retrieves the user's active registration for an event, (nil, nil)
// when not registered
func (s *registrationService) Status(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	return s.registrationRepo.GetActiveByEventAndUser(ctx, eventID, userID)
}

// ListMine lists the user's registrations with events preloaded
func (s *registrationService) ListMine(ctx context.Context, userID string) ([]*domain.Registration, error) {
	return s.registrationRepo.ListByUser(ctx, userID)
}

// ListForEvent lists an event's registrations for its organizer
func (s *registrationService) ListForEvent(ctx context.Context, eventID, organizerID string) ([]*domain.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrNotEventOwner
	}
	return s.registrationRepo.ListByEvent(ctx, eventID)
}

// CheckIn marks a ticket as used at the door. Only the event's organizer may
// scan tickets; the conditional update in storage makes a double scan lose.
func (s *registrationService) CheckIn(ctx context.Context, organizerID, ticketCode string) (*domain.Registration, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.registration.check_in")
	defer span.End()

	reg, err := s.registrationRepo.GetByTicketCode(ctx, ticketCode)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrTicketNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, reg.EventID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	if event.OrganizerID != organizerID {
		span.SetStatus(codes.Error, "not owner")
		return nil, domain.ErrNotEventOwner
	}

	checked, err := s.registrationRepo.CheckIn(ctx, ticketCode, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return checked, nil
}

// generateTicketCode builds a ticket code like EVT-1756387200000-K3N7Q2X9A
func generateTicketCode(now time.Time) (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate ticket code: %w", err)
	}
	for i, b := range buf {
		buf[i] = ticketCodeAlphabet[int(b)%len(ticketCodeAlphabet)]
	}
	return fmt.Sprintf("EVT-%d-%s", now.UnixMilli(), string(buf)), nil
}
