package dto

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirmPassword"`
	ReferralCode     string `json:"referralCode"`
	AcceptTerms      bool   `json:"acceptTerms"`
	AcceptNewsletter bool   `json:"acceptNewsletter"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type PendingResponse struct {
	Busy bool   `json:"busy"`
	Kind string `json:"kind,omitempty"`
}

// AuthResponse reports the state of a login or registration request.
type AuthResponse struct {
	Busy    bool   `json:"busy"`
	Kind    string `json:"kind,omitempty"`
	Applied bool   `json:"applied"`
	Page    any    `json:"page"`
}

type PreferenceRequest struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}
