package types

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents the candidate-side attributes consumed by matching.
// Languages maps a language code to a proficiency level (e.g. "en" -> "C1").
// Salary bounds are optional; nil means the candidate did not state one.
type Profile struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	FullName     string            `json:"full_name,omitempty"`
	Location     string            `json:"location,omitempty"`
	DesiredRoles []string          `json:"desired_roles,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Languages    map[string]string `json:"languages,omitempty"`
	SalaryMin    *float64          `json:"salary_min,omitempty"`
	SalaryMax    *float64          `json:"salary_max,omitempty"`
}

// User is the account a profile belongs to. Only the fields the serve
// surface needs; everything else lives with the caller.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}
