package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SeasonStatus represents the lifecycle status of a season
type SeasonStatus string

const (
	SeasonDraft  SeasonStatus = "draft"
	SeasonActive SeasonStatus = "active"
	SeasonClosed SeasonStatus = "closed"
)

// Season represents a scoring season within a project. At most one season
// per project is active at a time.
type Season struct {
	ID        string       `json:"id"`
	ProjectID string       `json:"project_id"`
	Name      string       `json:"name"`
	StartAt   time.Time    `json:"start_at"`
	EndAt     time.Time    `json:"end_at"`
	Status    SeasonStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSeason creates a new draft Season with a generated UUID
func NewSeason(projectID, name string, startAt, endAt time.Time) *Season {
	now := time.Now()
	return &Season{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartAt:   startAt,
		EndAt:     endAt,
		Status:    SeasonDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the Season fields
func (s *Season) Validate() error {
	if s.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if s.Name == "" {
		return errors.New("season name is required")
	}
	if !s.StartAt.Before(s.EndAt) {
		return errors.New("season start must be before end")
	}
	return nil
}

// Contains checks whether t falls within the season boundaries
func (s *Season) Contains(t time.Time) bool {
	return !t.Before(s.StartAt) && !t.After(s.EndAt)
}

// IsActive checks if the season is active
func (s *Season) IsActive() bool {
	return s.Status == SeasonActive
}
