package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GitIdentity maps a git author email to a league participant. Many git
// emails may map to one user.
type GitIdentity struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	GitEmail  string    `json:"git_email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGitIdentity creates a new GitIdentity with a generated UUID
func NewGitIdentity(userID, gitEmail string) *GitIdentity {
	return &GitIdentity{
		ID:        uuid.New().String(),
		UserID:    userID,
		GitEmail:  strings.ToLower(gitEmail),
		CreatedAt: time.Now(),
	}
}
