package service

import (
	"context"
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

// userService implements UserService
type userService struct {
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, log *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

// ResolveExternal maps the identity provider's id to the platform account
func (s *userService) ResolveExternal(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// CreateFromWebhook provisions an account from a signup webhook. Webhooks are
// delivered at least once, so an already-provisioned account is a success.
func (s *userService) CreateFromWebhook(ctx context.Context, data *dto.WebhookUserData) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.create_from_webhook")
	defer span.End()

	span.SetAttributes(attribute.String("external_id", data.ID))

	now := time.Now()
	user := &domain.User{
		ID:         uuid.New().String(),
		ExternalID: data.ID,
		Name:       data.FullName(),
		Email:      data.PrimaryEmail(),
		ImageURL:   data.ImageURL,
		Plan:       domain.PlanFree,
		Interests:  []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.userRepo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserAlreadyExists) {
		s.log.Info("webhook redelivery for existing user", zap.String("external_id", data.ID))
		return s.ResolveExternal(ctx, data.ID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return user, nil
}

// CompleteOnboarding stores interests and location and marks onboarding complete
func (s *userService) CompleteOnboarding(ctx context.Context, userID string, req *dto.OnboardingRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.complete_onboarding")
	defer span.End()

	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}

	if err := s.userRepo.UpdateOnboarding(ctx, userID, req.Interests, req.City, req.State, req.Country); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
