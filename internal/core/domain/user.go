package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleSpecialist = "specialist"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the system. A specialist-role user
// references exactly one Specialist record via SpecialistID; admins have none.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	DisplayName  string    `json:"display_name"`
	SpecialistID string    `json:"specialist_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
