package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Absence represents a declared date range during which a player is
// ineligible for certain periodic awards.
type Absence struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SeasonID  string    `json:"season_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    *string   `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAbsence creates a new Absence with a generated UUID
func NewAbsence(userID, seasonID string, startDate, endDate time.Time) *Absence {
	return &Absence{
		ID:        uuid.New().String(),
		UserID:    userID,
		SeasonID:  seasonID,
		StartDate: TruncateToDay(startDate),
		EndDate:   TruncateToDay(endDate),
		CreatedAt: time.Now(),
	}
}

// Validate validates the Absence fields
func (a *Absence) Validate() error {
	if a.UserID == "" {
		return errors.New("user ID is required")
	}
	if a.SeasonID == "" {
		return errors.New("season ID is required")
	}
	if a.EndDate.Before(a.StartDate) {
		return errors.New("end date cannot be before start date")
	}
	return nil
}

// Covers checks whether the given date falls within the absence range
func (a *Absence) Covers(date time.Time) bool {
	day := TruncateToDay(date)
	return !day.Before(a.StartDate) && !day.After(a.EndDate)
}
