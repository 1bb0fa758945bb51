package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adityakashyap5047/Evix/internal/domain"
	"github.com/adityakashyap5047/Evix/internal/dto"
)

func validCreateEventRequest() *dto.CreateEventRequest {
	capacity := 100
	return &dto.CreateEventRequest{
		Title:        "Go Conference 2026",
		Description:  "A conference about Go",
		Category:     "Technology",
		StartDate:    time.Now().Add(24 * time.Hour),
		EndDate:      time.Now().Add(48 * time.Hour),
		LocationType: domain.LocationOffline,
		City:         "Bangalore",
		Country:      "India",
		Capacity:     &capacity,
		TicketType:   domain.TicketFree,
	}
}

func freeUser() *domain.User {
	return &domain.User{ID: "user-1", ExternalID: "ext-1", Plan: domain.PlanFree}
}

func proUser() *domain.User {
	return &domain.User{ID: "user-2", ExternalID: "ext-2", Plan: domain.PlanPro}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		event, err := svc.Create(ctx, freeUser(), validCreateEventRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if event.ID == "" {
			t.Error("Create() did not assign an ID")
		}
		if event.ThemeColor != domain.DefaultThemeColor {
			t.Errorf("ThemeColor = %q, want default %q", event.ThemeColor, domain.DefaultThemeColor)
		}
		if event.RegistrationCount != 0 {
			t.Errorf("RegistrationCount = %d, want 0", event.RegistrationCount)
		}
	})

	t.Run("slug is derived from the title with a unique suffix", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		event, err := svc.Create(ctx, proUser(), validCreateEventRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if !strings.HasPrefix(event.Slug, "go-conference-2026-") {
			t.Errorf("Slug = %q, want prefix go-conference-2026-", event.Slug)
		}
		suffix := strings.TrimPrefix(event.Slug, "go-conference-2026-")
		if len(suffix) != 13 {
			t.Errorf("slug suffix = %q, want 13-digit millisecond timestamp", suffix)
		}
	})

	t.Run("free plan hits the quota on the second event", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())
		user := freeUser()

		if _, err := svc.Create(ctx, user, validCreateEventRequest()); err != nil {
			t.Fatalf("first Create() error = %v", err)
		}
		_, err := svc.Create(ctx, user, validCreateEventRequest())
		if !errors.Is(err, domain.ErrQuotaExceeded) {
			t.Errorf("second Create() error = %v, want ErrQuotaExceeded", err)
		}
	})

	t.Run("pro plan is not quota limited", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())
		user := proUser()

		for i := 0; i < 5; i++ {
			if _, err := svc.Create(ctx, user, validCreateEventRequest()); err != nil {
				t.Fatalf("Create() #%d error = %v", i+1, err)
			}
		}
	})

	t.Run("custom theme is rejected for free plan", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		req := validCreateEventRequest()
		req.ThemeColor = "#ff0000"
		_, err := svc.Create(ctx, freeUser(), req)
		if !errors.Is(err, domain.ErrFeatureRestricted) {
			t.Errorf("Create() error = %v, want ErrFeatureRestricted", err)
		}
	})

	t.Run("custom theme is allowed for pro plan", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		req := validCreateEventRequest()
		req.ThemeColor = "#ff0000"
		event, err := svc.Create(ctx, proUser(), req)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if event.ThemeColor != "#ff0000" {
			t.Errorf("ThemeColor = %q, want #ff0000", event.ThemeColor)
		}
	})

	t.Run("invalid request is rejected", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		req := validCreateEventRequest()
		req.Capacity = nil
		_, err := svc.Create(ctx, freeUser(), req)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Create() with nil capacity error = %v, want ErrInvalidInput", err)
		}
		if !domain.IsValidationError(err) {
			t.Errorf("Create() validation failure not classified as validation: %v", err)
		}
	})
}

func TestEventService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	repo := NewMockEventRepository()
	svc := NewEventService(repo, newTestLogger())

	repo.AddEvent(&domain.Event{ID: "event-1", Slug: "my-event-123", OrganizerID: "user-1"})

	event, err := svc.GetBySlug(ctx, "my-event-123")
	if err != nil {
		t.Fatalf("GetBySlug() error = %v", err)
	}
	if event.ID != "event-1" {
		t.Errorf("GetBySlug() ID = %q, want event-1", event.ID)
	}

	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("GetBySlug(missing) error = %v, want ErrEventNotFound", err)
	}
}

func TestEventService_Pagination(t *testing.T) {
	ctx := context.Background()
	repo := NewMockEventRepository()
	svc := NewEventService(repo, newTestLogger())

	tests := []struct {
		name  string
		page  int
		limit int
	}{
		{"zero page", 0, 10},
		{"negative page", -1, 10},
		{"zero limit", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.ListUpcoming(ctx, tt.page, tt.limit)
			if !errors.Is(err, domain.ErrInvalidPagination) {
				t.Errorf("ListUpcoming(%d, %d) error = %v, want ErrInvalidPagination", tt.page, tt.limit, err)
			}
		})
	}
}

func TestEventService_Search(t *testing.T) {
	ctx := context.Background()
	repo := NewMockEventRepository()
	svc := NewEventService(repo, newTestLogger())

	repo.AddEvent(&domain.Event{
		ID:        "event-1",
		Title:     "Jazz Night",
		Slug:      "jazz-night-1",
		StartDate: time.Now().Add(24 * time.Hour),
	})
	repo.AddEvent(&domain.Event{
		ID:        "event-2",
		Title:     "Jazz Brunch",
		Slug:      "jazz-brunch-1",
		StartDate: time.Now().Add(-24 * time.Hour),
	})

	t.Run("query shorter than two characters", func(t *testing.T) {
		if _, err := svc.Search(ctx, "j", 10); !errors.Is(err, domain.ErrQueryTooShort) {
			t.Errorf("Search(j) error = %v, want ErrQueryTooShort", err)
		}
	})

	t.Run("whitespace does not count toward the minimum", func(t *testing.T) {
		if _, err := svc.Search(ctx, " j ", 10); !errors.Is(err, domain.ErrQueryTooShort) {
			t.Errorf("Search( j ) error = %v, want ErrQueryTooShort", err)
		}
	})

	t.Run("matches are case-insensitive and upcoming only", func(t *testing.T) {
		events, err := svc.Search(ctx, "JAZZ", 10)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(events) != 1 || events[0].ID != "event-1" {
			t.Errorf("Search(JAZZ) = %d events, want only the upcoming one", len(events))
		}
	})
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer deletes own event", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())
		user := freeUser()

		event, err := svc.Create(ctx, user, validCreateEventRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := svc.Delete(ctx, event.ID, user); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := svc.GetBySlug(ctx, event.Slug); !errors.Is(err, domain.ErrEventNotFound) {
			t.Error("event still retrievable after delete")
		}
	})

	t.Run("delete frees the quota slot", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())
		user := freeUser()

		event, err := svc.Create(ctx, user, validCreateEventRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := svc.Delete(ctx, event.ID, user); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := svc.Create(ctx, user, validCreateEventRequest()); err != nil {
			t.Errorf("Create() after delete error = %v, want quota slot freed", err)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		event, err := svc.Create(ctx, freeUser(), validCreateEventRequest())
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if err := svc.Delete(ctx, event.ID, proUser()); !errors.Is(err, domain.ErrNotEventOwner) {
			t.Errorf("Delete() by non-owner error = %v, want ErrNotEventOwner", err)
		}
	})

	t.Run("missing event", func(t *testing.T) {
		repo := NewMockEventRepository()
		svc := NewEventService(repo, newTestLogger())

		if err := svc.Delete(ctx, "missing", freeUser()); !errors.Is(err, domain.ErrEventNotFound) {
			t.Errorf("Delete(missing) error = %v, want ErrEventNotFound", err)
		}
	})
}

func TestGenerateSlug(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	tests := []struct {
		title string
		want  string
	}{
		{"Go Conference 2026", "go-conference-2026-1700000000000"},
		{"  Rock & Roll!!  ", "rock-roll-1700000000000"},
		{"日本語 Meetup", "meetup-1700000000000"},
		{"Café Night", "caf-night-1700000000000"},
		{"!!!", "event-1700000000000"},
	}
	for _, tt := range tests {
		if got := generateSlug(tt.title, now); got != tt.want {
			t.Errorf("generateSlug(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
