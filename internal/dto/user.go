package dto

// OnboardingRequest represents the onboarding completion payload
type OnboardingRequest struct {
	Interests []string `json:"interests" binding:"required,min=1"`
	City      string   `json:"city" binding:"max=100"`
	State     string   `json:"state" binding:"max=100"`
	Country   string   `json:"country" binding:"max=100"`
}

// Validate validates the OnboardingRequest
func (r *OnboardingRequest) Validate() (bool, string) {
	if len(r.Interests) == 0 {
		return false, "At least one interest is required"
	}
	for _, tag := range r.Interests {
		if tag == "" {
			return false, "Interests cannot be empty"
		}
	}
	return true, ""
}

// UserResponse represents the response for a user profile
type UserResponse struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	ImageURL               string   `json:"image_url,omitempty"`
	Plan                   string   `json:"plan"`
	FreeEventsCreated      int      `json:"free_events_created"`
	Interests              []string `json:"interests"`
	City                   string   `json:"city,omitempty"`
	State                  string   `json:"state,omitempty"`
	Country                string   `json:"country,omitempty"`
	HasCompletedOnboarding bool     `json:"has_completed_onboarding"`
	CreatedAt              string   `json:"created_at"`
}
