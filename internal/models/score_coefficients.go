package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ScoreCoefficients holds the per-project scoring configuration.
// Created lazily with defaults on first access.
type ScoreCoefficients struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	AdditionsWeight float64   `json:"additions_weight"`
	DeletionsWeight float64   `json:"deletions_weight"`
	CommitBase      int       `json:"commit_base"`
	MultiFileBonus  int       `json:"multi_file_bonus"`
	FixBonus        int       `json:"fix_bonus"`
	WipPenalty      int       `json:"wip_penalty"`
	MaxAdditionsCap int       `json:"max_additions_cap"`
	MaxDeletionsCap int       `json:"max_deletions_cap"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewScoreCoefficients creates default score coefficients for a project
func NewScoreCoefficients(projectID string) *ScoreCoefficients {
	now := time.Now()
	return &ScoreCoefficients{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		AdditionsWeight: 1.0,
		DeletionsWeight: 0.6,
		CommitBase:      10,
		MultiFileBonus:  5,
		FixBonus:        15,
		WipPenalty:      -10,
		MaxAdditionsCap: 1000,
		MaxDeletionsCap: 1000,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate validates the ScoreCoefficients fields
func (sc *ScoreCoefficients) Validate() error {
	if sc.ProjectID == "" {
		return errors.New("project ID is required")
	}
	if sc.AdditionsWeight < 0 {
		return errors.New("additions weight cannot be negative")
	}
	if sc.DeletionsWeight < 0 {
		return errors.New("deletions weight cannot be negative")
	}
	if sc.MaxAdditionsCap < 0 {
		return errors.New("max additions cap cannot be negative")
	}
	if sc.MaxDeletionsCap < 0 {
		return errors.New("max deletions cap cannot be negative")
	}
	if sc.WipPenalty > 0 {
		return errors.New("wip penalty cannot be positive")
	}
	return nil
}
