package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
	"github.com/adityakashyap5047/Evix/pkg/middleware"
)

// fakeAuth stamps the request with an external user id the way the JWT
// middleware would
func fakeAuth(externalID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ExternalUserIDKey, externalID)
		c.Next()
	}
}

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	users map[string]*domain.User
}

func NewMockUserService() *MockUserService {
	return &MockUserService{users: make(map[string]*domain.User)}
}

func (m *MockUserService) AddUser(user *domain.User) {
	m.users[user.ExternalID] = user
}

func (m *MockUserService) ResolveExternal(ctx context.Context, externalID string) (*domain.User, error) {
	user, ok := m.users[externalID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (m *MockUserService) CreateFromWebhook(ctx context.Context, data *dto.WebhookUserData) (*domain.User, error) {
	if user, ok := m.users[data.ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         "user-" + data.ID,
		ExternalID: data.ID,
		Name:       data.FullName(),
		Email:      data.PrimaryEmail(),
		Plan:       domain.PlanFree,
		Interests:  []string{},
		CreatedAt:  time.Now(),
	}
	m.users[data.ID] = user
	return user, nil
}

func (m *MockUserService) CompleteOnboarding(ctx context.Context, userID string, req *dto.OnboardingRequest) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			user.Interests = req.Interests
			user.City = req.City
			user.State = req.State
			user.Country = req.Country
			user.HasCompletedOnboarding = true
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockEventService is a mock implementation of service.EventService
type MockEventService struct {
	events    map[string]*domain.Event
	createErr error
	deleteErr error
}

func NewMockEventService() *MockEventService {
	return &MockEventService{events: make(map[string]*domain.Event)}
}

func (m *MockEventService) AddEvent(event *domain.Event) {
	m.events[event.ID] = event
}

func (m *MockEventService) Create(ctx context.Context, organizer *domain.User, req *dto.CreateEventRequest) (*domain.Event, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	now := time.Now()
	event := &domain.Event{
		ID:           "event-123",
		Title:        req.Title,
		Slug:         "test-slug-1700000000000",
		OrganizerID:  organizer.ID,
		Category:     req.Category,
		Tags:         []string{},
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		LocationType: req.LocationType,
		Capacity:     req.Capacity,
		TicketType:   req.TicketType,
		ThemeColor:   domain.DefaultThemeColor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *MockEventService) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range m.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventService) ListMine(ctx context.Context, organizerID string, page, limit int) ([]*domain.Event, int64, error) {
	var events []*domain.Event
	for _, e := range m.events {
		if e.OrganizerID == organizerID {
			events = append(events, e)
		}
	}
	return events, int64(len(events)), nil
}

func (m *MockEventService) ListUpcoming(ctx context.Context, page, limit int) ([]*domain.Event, int64, error) {
	return m.all(), int64(len(m.events)), nil
}

func (m *MockEventService) ListAll(ctx context.Context, page, limit int) ([]*domain.Event, int64, error) {
	return m.all(), int64(len(m.events)), nil
}

func (m *MockEventService) ListByCategory(ctx context.Context, category string, page, limit int) ([]*domain.Event, int64, error) {
	var events []*domain.Event
	for _, e := range m.events {
		if e.Category == category {
			events = append(events, e)
		}
	}
	return events, int64(len(events)), nil
}

func (m *MockEventService) ListByLocation(ctx context.Context, city, state, country string, page, limit int) ([]*domain.Event, int64, error) {
	return m.all(), int64(len(m.events)), nil
}

func (m *MockEventService) Search(ctx context.Context, query string, limit int) ([]*domain.Event, error) {
	if len(query) < 2 {
		return nil, domain.ErrQueryTooShort
	}
	return m.all(), nil
}

func (m *MockEventService) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	return []domain.CategoryCount{{Category: "Music", Count: 2}}, nil
}

func (m *MockEventService) Delete(ctx context.Context, eventID string, organizer *domain.User) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	event, ok := m.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if event.OrganizerID != organizer.ID {
		return domain.ErrNotEventOwner
	}
	delete(m.events, eventID)
	return nil
}

func (m *MockEventService) all() []*domain.Event {
	var events []*domain.Event
	for _, e := range m.events {
		events = append(events, e)
	}
	return events
}

// MockDiscoveryService is a mock implementation of service.DiscoveryService
type MockDiscoveryService struct {
	events *MockEventService
}

func NewMockDiscoveryService(events *MockEventService) *MockDiscoveryService {
	return &MockDiscoveryService{events: events}
}

func (m *MockDiscoveryService) Featured(ctx context.Context, limit int) ([]*domain.Event, error) {
	return m.events.all(), nil
}

func (m *MockDiscoveryService) ForYou(ctx context.Context, user *domain.User, page, limit int) ([]*domain.Event, int64, error) {
	if page < 1 || limit < 1 {
		return nil, 0, domain.ErrInvalidPagination
	}
	return m.events.all(), int64(len(m.events.events)), nil
}

// MockRegistrationService is a mock implementation of service.RegistrationService
type MockRegistrationService struct {
	regs        map[string]*domain.Registration
	registerErr error
	checkInErr  error
}

func NewMockRegistrationService() *MockRegistrationService {
	return &MockRegistrationService{regs: make(map[string]*domain.Registration)}
}

func (m *MockRegistrationService) AddRegistration(reg *domain.Registration) {
	m.regs[reg.ID] = reg
}

func (m *MockRegistrationService) Register(ctx context.Context, eventID string, user *domain.User, req *dto.RegisterRequest) (*domain.Registration, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	reg := &domain.Registration{
		ID:            "reg-123",
		EventID:       eventID,
		UserID:        user.ID,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		TicketCode:    "EVT-1700000000000-ABC123XYZ",
		Status:        domain.RegistrationConfirmed,
		RegisteredAt:  time.Now(),
	}
	m.regs[reg.ID] = reg
	return reg, nil
}

func (m *MockRegistrationService) Cancel(ctx context.Context, registrationID, userID string) error {
	reg, ok := m.regs[registrationID]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return domain.ErrNotRegistrationOwner
	}
	reg.Status = domain.RegistrationCancelled
	return nil
}

func (m *MockRegistrationService) Get(ctx context.Context, registrationID, userID string) (*domain.Registration, error) {
	reg, ok := m.regs[registrationID]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return nil, domain.ErrNotRegistrationOwner
	}
	return reg, nil
}

func (m *MockRegistrationService) Status(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.UserID == userID && reg.IsActive() {
			return reg, nil
		}
	}
	return nil, nil
}

func (m *MockRegistrationService) ListMine(ctx context.Context, userID string) ([]*domain.Registration, error) {
	var regs []*domain.Registration
	for _, reg := range m.regs {
		if reg.UserID == userID {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

func (m *MockRegistrationService) ListForEvent(ctx context.Context, eventID, organizerID string) ([]*domain.Registration, error) {
	var regs []*domain.Registration
	for _, reg := range m.regs {
		if reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

func (m *MockRegistrationService) CheckIn(ctx context.Context, organizerID, ticketCode string) (*domain.Registration, error) {
	if m.checkInErr != nil {
		return nil, m.checkInErr
	}
	for _, reg := range m.regs {
		if reg.TicketCode == ticketCode {
			if reg.CheckedIn {
				return nil, domain.ErrAlreadyCheckedIn
			}
			reg.CheckedIn = true
			now := time.Now()
			reg.CheckedInAt = &now
			return reg, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

// MockImageService is a mock implementation of service.ImageService
type MockImageService struct {
	searchErr error
}

func (m *MockImageService) Search(ctx context.Context, query string, page, perPage int) (*dto.ImageSearchResponse, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return &dto.ImageSearchResponse{
		Total:      1,
		TotalPages: 1,
		Results: []dto.ImageResult{
			{ID: "photo-1", Photographer: "Jane Doe"},
		},
	}, nil
}
