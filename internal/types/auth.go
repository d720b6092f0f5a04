package types

// CreateUserRequest represents the request to register a new account.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the authenticated user and their token.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdatePasswordRequest represents a password change request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ProfileRequest is the payload for creating or replacing the caller's
// candidate profile.
type ProfileRequest struct {
	FullName     string            `json:"full_name,omitempty"`
	Location     string            `json:"location,omitempty"`
	DesiredRoles []string          `json:"desired_roles,omitempty" validate:"max=20,dive,min=1"`
	Skills       []string          `json:"skills,omitempty" validate:"max=100,dive,min=1"`
	Languages    map[string]string `json:"languages,omitempty"`
	SalaryMin    *float64          `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax    *float64          `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
}

// SourceRequest is the payload for creating or updating a vacancy source.
type SourceRequest struct {
	Type      SourceType     `json:"type" validate:"required,oneof=rss html csv_url manual"`
	Name      string         `json:"name" validate:"required,min=1"`
	URL       string         `json:"url,omitempty" validate:"omitempty,url"`
	Config    map[string]any `json:"config,omitempty"`
	IsEnabled *bool          `json:"is_enabled,omitempty"`
}
