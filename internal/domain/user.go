package domain

import "time"

// Plan tiers
const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

// FreeEventLimit is the number of events a FREE-plan user may have live at once.
const FreeEventLimit = 1

// DefaultThemeColor is the only theme color available to FREE-plan organizers.
const DefaultThemeColor = "#1e3a8a"

// User represents a platform account. Accounts are created by the identity
// provider webhook on first signup and keyed by the provider's external id.
type User struct {
	ID                     string     `json:"id"`
	ExternalID             string     `json:"external_id"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	ImageURL               string     `json:"image_url,omitempty"`
	Plan                   string     `json:"plan"`
	FreeEventsCreated      int        `json:"free_events_created"`
	Interests              []string   `json:"interests"`
	City                   string     `json:"city,omitempty"`
	State                  string     `json:"state,omitempty"`
	Country                string     `json:"country,omitempty"`
	HasCompletedOnboarding bool       `json:"has_completed_onboarding"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	DeletedAt              *time.Time `json:"-"`
}

// IsPro reports whether the user is on the PRO plan.
func (u *User) IsPro() bool {
	return u.Plan == PlanPro
}

// HasInterest reports whether the given category is in the user's interest set.
func (u *User) HasInterest(category string) bool {
	for _, tag := range u.Interests {
		if tag == category {
			return true
		}
	}
	return false
}
