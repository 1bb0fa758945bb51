package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	createErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.ExternalID == user.ExternalID {
			return domain.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (m *MockUserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) UpdateOnboarding(ctx context.Context, userID string, interests []string, city, state, country string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Interests = interests
	user.City = city
	user.State = state
	user.Country = country
	user.HasCompletedOnboarding = true
	return nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mu        sync.Mutex
	events    map[string]*domain.Event
	quotaUsed map[string]int
	createErr error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		events:    make(map[string]*domain.Event),
		quotaUsed: make(map[string]int),
	}
}

func (m *MockEventRepository) AddEvent(event *domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
}

func (m *MockEventRepository) CreateWithQuota(ctx context.Context, event *domain.Event, enforceQuota bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if enforceQuota {
		if m.quotaUsed[event.OrganizerID] >= domain.FreeEventLimit {
			return domain.ErrQuotaExceeded
		}
		m.quotaUsed[event.OrganizerID]++
	}
	m.events[event.ID] = event
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return event, nil
}

func (m *MockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, nil
}

func (m *MockEventRepository) ListByOrganizer(ctx context.Context, organizerID string, limit, offset int) ([]*domain.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.Event
	for _, e := range m.events {
		if e.OrganizerID == organizerID {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	return page(events, limit, offset), int64(len(events)), nil
}

func (m *MockEventRepository) ListUpcoming(ctx context.Context, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := m.upcoming(now)
	return page(events, limit, offset), int64(len(events)), nil
}

func (m *MockEventRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.Event
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDate.After(events[j].StartDate) })
	return page(events, limit, offset), int64(len(events)), nil
}

func (m *MockEventRepository) ListByCategory(ctx context.Context, category string, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.Event
	for _, e := range m.upcoming(now) {
		if e.Category == category {
			events = append(events, e)
		}
	}
	return page(events, limit, offset), int64(len(events)), nil
}

func (m *MockEventRepository) ListByLocation(ctx context.Context, city, state, country string, now time.Time, limit, offset int) ([]*domain.Event, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.Event
	for _, e := range m.upcoming(now) {
		if (city != "" && strings.EqualFold(e.City, city)) ||
			(state != "" && strings.EqualFold(e.State, state)) ||
			(country != "" && strings.EqualFold(e.Country, country)) {
			events = append(events, e)
		}
	}
	return page(events, limit, offset), int64(len(events)), nil
}

func (m *MockEventRepository) Search(ctx context.Context, query string, now time.Time, limit int) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.Event
	for _, e := range m.upcoming(now) {
		if strings.Contains(strings.ToLower(e.Title), strings.ToLower(query)) {
			events = append(events, e)
		}
	}
	return page(events, limit, 0), nil
}

func (m *MockEventRepository) CategoryCounts(ctx context.Context, now time.Time) ([]domain.CategoryCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byCategory := make(map[string]int64)
	for _, e := range m.upcoming(now) {
		byCategory[e.Category]++
	}
	var counts []domain.CategoryCount
	for category, count := range byCategory {
		counts = append(counts, domain.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	return counts, nil
}

func (m *MockEventRepository) DeleteCascade(ctx context.Context, eventID, organizerID string, decrementQuota bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok || event.OrganizerID != organizerID {
		return false, domain.ErrEventNotFound
	}
	delete(m.events, eventID)
	if !decrementQuota {
		return false, nil
	}
	if m.quotaUsed[organizerID] == 0 {
		return true, nil
	}
	m.quotaUsed[organizerID]--
	return false, nil
}

func (m *MockEventRepository) upcoming(now time.Time) []*domain.Event {
	var events []*domain.Event
	for _, e := range m.events {
		if !e.StartDate.Before(now) {
			events = append(events, e)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].StartDate.After(events[j].StartDate) })
	return events
}

func page(events []*domain.Event, limit, offset int) []*domain.Event {
	if offset >= len(events) {
		return nil
	}
	events = events[offset:]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// MockRegistrationRepository is a mock implementation of
// RegistrationRepository. It shares the event map with a MockEventRepository
// so the denormalized registration count behaves like the real storage layer.
type MockRegistrationRepository struct {
	mu          sync.Mutex
	regs        map[string]*domain.Registration
	events      *MockEventRepository
	collideOnce bool
	registerErr error
}

func NewMockRegistrationRepository(events *MockEventRepository) *MockRegistrationRepository {
	return &MockRegistrationRepository{
		regs:   make(map[string]*domain.Registration),
		events: events,
	}
}

func (m *MockRegistrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registerErr != nil {
		return m.registerErr
	}
	if m.collideOnce {
		m.collideOnce = false
		return domain.ErrTicketCodeCollision
	}

	event, ok := m.events.events[reg.EventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if event.RegistrationCount >= event.EffectiveCapacity() {
		return domain.ErrCapacityExceeded
	}
	for _, existing := range m.regs {
		if existing.EventID == reg.EventID && existing.UserID == reg.UserID && existing.IsActive() {
			return domain.ErrDuplicateRegistration
		}
		if existing.TicketCode == reg.TicketCode {
			return domain.ErrTicketCodeCollision
		}
	}

	event.RegistrationCount++
	stored := *reg
	m.regs[reg.ID] = &stored
	return nil
}

func (m *MockRegistrationRepository) Cancel(ctx context.Context, registrationID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[registrationID]
	if !ok {
		return false, domain.ErrRegistrationNotFound
	}
	if reg.UserID != userID {
		return false, domain.ErrNotRegistrationOwner
	}
	if reg.Status == domain.RegistrationCancelled {
		return false, domain.ErrRegistrationCancelled
	}
	reg.Status = domain.RegistrationCancelled

	event, ok := m.events.events[reg.EventID]
	if !ok {
		return false, nil
	}
	if event.RegistrationCount == 0 {
		return true, nil
	}
	event.RegistrationCount--
	return false, nil
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return nil, nil
	}
	return reg, nil
}

func (m *MockRegistrationRepository) GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.UserID == userID && reg.IsActive() {
			return reg, nil
		}
	}
	return nil, nil
}

func (m *MockRegistrationRepository) GetByTicketCode(ctx context.Context, ticketCode string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, reg := range m.regs {
		if reg.TicketCode == ticketCode {
			return reg, nil
		}
	}
	return nil, nil
}

func (m *MockRegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var regs []*domain.Registration
	for _, reg := range m.regs {
		if reg.UserID == userID {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].RegisteredAt.After(regs[j].RegisteredAt) })
	return regs, nil
}

func (m *MockRegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var regs []*domain.Registration
	for _, reg := range m.regs {
		if reg.EventID == eventID {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].RegisteredAt.After(regs[j].RegisteredAt) })
	return regs, nil
}

func (m *MockRegistrationRepository) CheckIn(ctx context.Context, ticketCode string, now time.Time) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, reg := range m.regs {
		if reg.TicketCode != ticketCode {
			continue
		}
		if reg.Status != domain.RegistrationConfirmed {
			return nil, domain.ErrTicketNotFound
		}
		if reg.CheckedIn {
			return nil, domain.ErrAlreadyCheckedIn
		}
		reg.CheckedIn = true
		checkedInAt := now
		reg.CheckedInAt = &checkedInAt
		return reg, nil
	}
	return nil, domain.ErrTicketNotFound
}
