package dto

import (
	"time"

	"github.com/adityakashyap5047/Evix/internal/domain"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Title         string    `json:"title" binding:"required,min=1,max=255"`
	Description   string    `json:"description"`
	Category      string    `json:"category" binding:"required,max=100"`
	Tags          []string  `json:"tags"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	Timezone      string    `json:"timezone"`
	LocationType  string    `json:"location_type" binding:"required"`
	Venue         string    `json:"venue" binding:"max=500"`
	Address       string    `json:"address"`
	City          string    `json:"city" binding:"max=100"`
	State         string    `json:"state" binding:"max=100"`
	Country       string    `json:"country" binding:"max=100"`
	Capacity      *int      `json:"capacity"`
	TicketType    string    `json:"ticket_type" binding:"required"`
	TicketPrice   *float64  `json:"ticket_price"`
	ThemeColor    string    `json:"theme_color"`
	CoverImageURL string    `json:"cover_image_url"`
	OrganizerID   string    `json:"-"` // Set from context
}

// Validate validates the CreateEventRequest
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Title == "" {
		return false, "Event title is required"
	}
	if r.Category == "" {
		return false, "Event category is required"
	}
	if r.EndDate.Before(r.StartDate) {
		return false, "End date must be after start date"
	}
	switch r.LocationType {
	case domain.LocationOnline, domain.LocationOffline, domain.LocationHybrid:
	default:
		return false, "Location type must be ONLINE, OFFLINE or HYBRID"
	}
	switch r.TicketType {
	case domain.TicketFree:
	case domain.TicketPaid:
		if r.TicketPrice == nil || *r.TicketPrice <= 0 {
			return false, "Ticket price is required for paid events"
		}
	default:
		return false, "Ticket type must be FREE or PAID"
	}
	// An absent capacity is stored as 0 and blocks every registration, so
	// require it up front.
	if r.Capacity == nil || *r.Capacity < 1 {
		return false, "Capacity must be at least 1"
	}
	return true, ""
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Description       string             `json:"description"`
	Slug              string             `json:"slug"`
	Category          string             `json:"category"`
	Tags              []string           `json:"tags"`
	StartDate         string             `json:"start_date"`
	EndDate           string             `json:"end_date"`
	Timezone          string             `json:"timezone"`
	LocationType      string             `json:"location_type"`
	Venue             string             `json:"venue,omitempty"`
	Address           string             `json:"address,omitempty"`
	City              string             `json:"city,omitempty"`
	State             string             `json:"state,omitempty"`
	Country           string             `json:"country,omitempty"`
	Capacity          *int               `json:"capacity"`
	TicketType        string             `json:"ticket_type"`
	TicketPrice       *float64           `json:"ticket_price,omitempty"`
	ThemeColor        string             `json:"theme_color"`
	CoverImageURL     string             `json:"cover_image_url,omitempty"`
	RegistrationCount int                `json:"registration_count"`
	Organizer         *OrganizerResponse `json:"organizer,omitempty"`
	CreatedAt         string             `json:"created_at"`
	UpdatedAt         string             `json:"updated_at"`
}

// OrganizerResponse is the public subset of a user shown on event pages
type OrganizerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events     []*EventResponse `json:"events"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// CategoryCountResponse represents the number of upcoming events per category
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// PaginationQuery carries page-based pagination parameters
type PaginationQuery struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=10"`
}

// LocationQuery carries the location discovery filters. Any provided field
// matches, case-insensitively.
type LocationQuery struct {
	City    string `form:"city"`
	State   string `form:"state"`
	Country string `form:"country"`
}

// IsEmpty reports whether no location filter was provided
func (q *LocationQuery) IsEmpty() bool {
	return q.City == "" && q.State == "" && q.Country == ""
}

// SearchQuery carries the title search parameters
type SearchQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit,default=10"`
}
