package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RepoStatus represents the sync health of a repository
type RepoStatus string

const (
	RepoPending RepoStatus = "pending"
	RepoSyncing RepoStatus = "syncing"
	RepoHealthy RepoStatus = "healthy"
	RepoError   RepoStatus = "error"
)

// maxErrorMessageLen caps the stored diagnostic message
const maxErrorMessageLen = 1000

// Repository represents a tracked Git repository within a project
type Repository struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"project_id"`
	Name            string     `json:"name"`
	Owner           string     `json:"owner"`
	Branch          string     `json:"branch"`
	Status          RepoStatus `json:"status"`
	ErrorMessage    *string    `json:"error_message"`
	LastSyncAt      *time.Time `json:"last_sync_at"`
	LastIngestedSHA *string    `json:"last_ingested_sha"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewRepository creates a new Repository with a generated UUID
func NewRepository(projectID, owner, name string) *Repository {
	now := time.Now()
	return &Repository{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Owner:     owner,
		Branch:    "main",
		Status:    RepoPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the Repository fields
func (r *Repository) Validate() error {
	if r.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if r.Name == "" {
		return errors.New("repository name is required")
	}
	return nil
}

// MarkSyncing marks the repository as currently syncing
func (r *Repository) MarkSyncing() {
	r.Status = RepoSyncing
	r.UpdatedAt = time.Now()
}

// RecordSync updates the sync metadata after a batch has been processed
func (r *Repository) RecordSync(lastIngestedSHA *string) {
	now := time.Now()
	r.LastSyncAt = &now
	if lastIngestedSHA != nil {
		r.LastIngestedSHA = lastIngestedSHA
	}
	r.UpdatedAt = now
}

// MarkHealthy clears any error state
func (r *Repository) MarkHealthy() {
	r.Status = RepoHealthy
	r.ErrorMessage = nil
	r.UpdatedAt = time.Now()
}

// MarkError records an error state with a truncated diagnostic message
func (r *Repository) MarkError(message string) {
	now := time.Now()
	if len(message) > maxErrorMessageLen {
		message = message[:maxErrorMessageLen]
	}
	r.Status = RepoError
	r.ErrorMessage = &message
	r.UpdatedAt = now
}
