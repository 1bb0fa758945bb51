package domain

import "time"

// Location types
const (
	LocationOnline  = "ONLINE"
	LocationOffline = "OFFLINE"
	LocationHybrid  = "HYBRID"
)

// Ticket types
const (
	TicketFree = "FREE"
	TicketPaid = "PAID"
)

// Event represents an organizer-created event. RegistrationCount is
// denormalized and must equal the number of CONFIRMED registrations; it is
// only ever changed inside the same transaction as the registration write.
type Event struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Slug              string    `json:"slug"`
	OrganizerID       string    `json:"organizer_id"`
	Organizer         *User     `json:"organizer,omitempty"`
	Category          string    `json:"category"`
	Tags              []string  `json:"tags"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Timezone          string    `json:"timezone"`
	LocationType      string    `json:"location_type"`
	Venue             string    `json:"venue,omitempty"`
	Address           string    `json:"address,omitempty"`
	City              string    `json:"city,omitempty"`
	State             string    `json:"state,omitempty"`
	Country           string    `json:"country,omitempty"`
	Capacity          *int      `json:"capacity"`
	TicketType        string    `json:"ticket_type"`
	TicketPrice       *float64  `json:"ticket_price,omitempty"`
	ThemeColor        string    `json:"theme_color"`
	CoverImageURL     string    `json:"cover_image_url,omitempty"`
	RegistrationCount int       `json:"registration_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CategoryCount is the number of upcoming events in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// EffectiveCapacity returns the capacity used for admission checks.
// A missing capacity counts as zero, which blocks registration until the
// organizer sets one explicitly.
func (e *Event) EffectiveCapacity() int {
	if e.Capacity == nil {
		return 0
	}
	return *e.Capacity
}

// IsUpcoming reports whether the event has not started yet at ref time.
func (e *Event) IsUpcoming(ref time.Time) bool {
	return !e.StartDate.Before(ref)
}
