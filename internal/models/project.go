package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project represents a scored project containing repositories and seasons
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProject creates a new Project with a generated UUID
func NewProject(name string) *Project {
	now := time.Now()
	return &Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the Project fields
func (p *Project) Validate() error {
	if p.Name == "" {
		return errors.New("project name is required")
	}
	return nil
}
