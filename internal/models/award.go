package models

import (
	"time"

	"github.com/google/uuid"
)

// AwardType represents the type of a periodic award
type AwardType string

const (
	AwardPlayerOfWeek  AwardType = "player_of_week"
	AwardPlayerOfMonth AwardType = "player_of_month"
	AwardMVP           AwardType = "mvp"
	AwardRookieOfMonth AwardType = "rookie_of_month"
	AwardRookieOfYear  AwardType = "rookie_of_year"
)

// Award represents a periodic award won by a player. Awards are immutable
// once created; at most one exists per
// (season, period_type, period_start, award_type).
type Award struct {
	ID          string     `json:"id"`
	SeasonID    string     `json:"season_id"`
	PeriodType  PeriodType `json:"period_type"`
	PeriodStart time.Time  `json:"period_start"`
	AwardType   AwardType  `json:"award_type"`
	UserID      string     `json:"user_id"`
	Score       float64    `json:"score"`
	Metadata    *string    `json:"metadata"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewAward creates a new Award with a generated UUID
func NewAward(seasonID string, periodType PeriodType, periodStart time.Time, awardType AwardType, userID string, score float64) *Award {
	return &Award{
		ID:          uuid.New().String(),
		SeasonID:    seasonID,
		PeriodType:  periodType,
		PeriodStart: TruncateToDay(periodStart),
		AwardType:   awardType,
		UserID:      userID,
		Score:       score,
		CreatedAt:   time.Now(),
	}
}

// SetMetadata attaches a JSON breakdown of the contributing metrics
func (a *Award) SetMetadata(metadata string) {
	a.Metadata = &metadata
}
