package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserStatus represents the account status of a league participant
type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserRetired UserStatus = "retired"
)

// User represents a league participant
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewUser creates a new active User with a generated UUID
func NewUser(name, email string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.ToLower(email),
		Status:    UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the User fields
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// IsRetired checks if the user account is retired
func (u *User) IsRetired() bool {
	return u.Status == UserRetired
}
