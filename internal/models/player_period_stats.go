package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PlayerPeriodStats represents aggregated statistics for a player over a
// single period bucket. At most one row exists per
// (user, season, period_type, period_start), enforced by a unique index.
type PlayerPeriodStats struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	SeasonID     string     `json:"season_id"`
	PeriodType   PeriodType `json:"period_type"`
	PeriodStart  time.Time  `json:"period_start"`
	Commits      int        `json:"commits"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	FilesChanged int        `json:"files_changed"`
	PTS          int        `json:"pts"`
	REB          int        `json:"reb"`
	AST          int        `json:"ast"`
	BLK          int        `json:"blk"`
	TOV          int        `json:"tov"`
	ImpactScore  float64    `json:"impact_score"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewPlayerPeriodStats creates an empty stats row for a period bucket
func NewPlayerPeriodStats(userID, seasonID string, periodType PeriodType, periodStart time.Time) *PlayerPeriodStats {
	now := time.Now()
	return &PlayerPeriodStats{
		ID:          uuid.New().String(),
		UserID:      userID,
		SeasonID:    seasonID,
		PeriodType:  periodType,
		PeriodStart: TruncateToDay(periodStart),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AddCommit increments the raw counters by the commit's stats and the
// metric counters by the given per-commit metrics
func (ps *PlayerPeriodStats) AddCommit(commit *Commit, metrics CommitMetrics) {
	ps.Commits++
	ps.Additions += commit.Additions
	ps.Deletions += commit.Deletions
	ps.FilesChanged += commit.FilesChanged
	ps.PTS += metrics.PTS
	ps.REB += metrics.REB
	ps.AST += metrics.AST
	ps.BLK += metrics.BLK
	ps.TOV += metrics.TOV
	ps.ImpactScore += metrics.ImpactScore
	ps.UpdatedAt = time.Now()
}

// Validate validates the PlayerPeriodStats fields
func (ps *PlayerPeriodStats) Validate() error {
	if ps.UserID == "" {
		return errors.New("user ID is required")
	}
	if ps.SeasonID == "" {
		return errors.New("season ID is required")
	}
	if !ps.PeriodType.IsValid() {
		return errors.New("invalid period type")
	}
	if ps.PeriodStart.IsZero() {
		return errors.New("period start is required")
	}
	if ps.Commits < 0 {
		return errors.New("commits cannot be negative")
	}
	if ps.Additions < 0 {
		return errors.New("additions cannot be negative")
	}
	if ps.Deletions < 0 {
		return errors.New("deletions cannot be negative")
	}
	if ps.FilesChanged < 0 {
		return errors.New("files changed cannot be negative")
	}
	return nil
}

// CommitMetrics holds the five gamified metrics and the composite impact
// score derived from a single commit.
type CommitMetrics struct {
	PTS         int     `json:"pts"`
	REB         int     `json:"reb"`
	AST         int     `json:"ast"`
	BLK         int     `json:"blk"`
	TOV         int     `json:"tov"`
	ImpactScore float64 `json:"impact_score"`
}
