package profile

import "time"

// UserProfile holds the single user's identity and onboarding state.
// Its presence in the store is the sole gate for onboarding.
type UserProfile struct {
	Name      string    `json:"name"`
	Onboarded bool      `json:"onboarded"`
	Joined    time.Time `json:"joined"`
}
