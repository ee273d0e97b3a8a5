package dtos

type PhoneAuthRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required,max=15"`
}

// UserProfile is the user shape returned to the frontend.
type UserProfile struct {
	UserID             string `json:"user_id"`
	PhoneNumber        string `json:"phone_number"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

type AuthResponse struct {
	User      UserProfile `json:"user"`
	IsNewUser bool        `json:"is_new_user"`
}
