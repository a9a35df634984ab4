package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayOfTheDay represents the single highest-scoring non-merge commit of a
// given date within a season. Immutable once created; at most one exists
// per (season, date).
type PlayOfTheDay struct {
	ID        string    `json:"id"`
	SeasonID  string    `json:"season_id"`
	PlayDate  time.Time `json:"play_date"`
	CommitSHA string    `json:"commit_sha"`
	UserID    string    `json:"user_id"`
	Score     float64   `json:"score"`
	Metadata  *string   `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPlayOfTheDay creates a new PlayOfTheDay with a generated UUID
func NewPlayOfTheDay(seasonID string, playDate time.Time, commitSHA, userID string, score float64) *PlayOfTheDay {
	return &PlayOfTheDay{
		ID:        uuid.New().String(),
		SeasonID:  seasonID,
		PlayDate:  TruncateToDay(playDate),
		CommitSHA: commitSHA,
		UserID:    userID,
		Score:     score,
		CreatedAt: time.Now(),
	}
}

// SetMetadata attaches a JSON breakdown of the winning commit
func (p *PlayOfTheDay) SetMetadata(metadata string) {
	p.Metadata = &metadata
}
