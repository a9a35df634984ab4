package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
)

// ErrSeasonNotFound is returned when a season does not exist
var ErrSeasonNotFound = errors.New("season not found")

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
)

// LeaderboardQuery describes one leaderboard page request
type LeaderboardQuery struct {
	SeasonID    string
	PeriodType  models.PeriodType
	PeriodStart *time.Time
	SortBy      string
	Order       string
	Page        int
	Limit       int
}

// LeaderboardPage is one ranked, paginated leaderboard result
type LeaderboardPage struct {
	Entries     []*models.LeaderboardEntry `json:"entries"`
	Total       int                        `json:"total"`
	Page        int                        `json:"page"`
	Limit       int                        `json:"limit"`
	PeriodType  models.PeriodType          `json:"period_type"`
	PeriodStart time.Time                  `json:"period_start"`
}

type LeaderboardService struct {
	statsRepo  *repositories.PlayerPeriodStatsRepository
	seasonRepo *repositories.SeasonRepository
}

func NewLeaderboardService(
	statsRepo *repositories.PlayerPeriodStatsRepository,
	seasonRepo *repositories.SeasonRepository,
) *LeaderboardService {
	return &LeaderboardService{
		statsRepo:  statsRepo,
		seasonRepo: seasonRepo,
	}
}

// GetLeaderboard returns a ranked page of players for a period bucket.
// The period defaults to the one containing the current time. Retired
// players are excluded. Each entry carries its period-over-period trend
// where a prior period row exists.
func (s *LeaderboardService) GetLeaderboard(query LeaderboardQuery) (*LeaderboardPage, error) {
	season, err := s.seasonRepo.GetByID(query.SeasonID)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, ErrSeasonNotFound
	}

	if !query.PeriodType.IsValid() {
		return nil, fmt.Errorf("invalid period type: %s", query.PeriodType)
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "impact_score"
	}
	if !models.IsValidLeaderboardSort(sortBy) {
		return nil, fmt.Errorf("invalid sort column: %s", sortBy)
	}
	order := query.Order
	if order != "asc" {
		order = "desc"
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}
	offset := (page - 1) * limit

	var periodStart time.Time
	if query.PeriodStart != nil {
		periodStart = models.TruncateToDay(*query.PeriodStart)
	} else {
		periodStart, err = models.PeriodStart(time.Now(), query.PeriodType, season)
		if err != nil {
			return nil, err
		}
	}

	total, err := s.statsRepo.CountForPeriod(query.SeasonID, query.PeriodType, periodStart)
	if err != nil {
		return nil, err
	}

	entries, err := s.statsRepo.GetLeaderboard(query.SeasonID, query.PeriodType, periodStart, sortBy, order, offset, limit)
	if err != nil {
		return nil, err
	}

	for i, entry := range entries {
		entry.Rank = offset + i + 1
		trend, err := s.trendFor(query.SeasonID, entry)
		if err != nil {
			return nil, err
		}
		entry.Trend = trend
	}

	return &LeaderboardPage{
		Entries:     entries,
		Total:       total,
		Page:        page,
		Limit:       limit,
		PeriodType:  query.PeriodType,
		PeriodStart: periodStart,
	}, nil
}

// trendFor compares an entry's impact score to the player's row in the
// immediately preceding period of the same type. There is no trend for
// the season bucket, for players without a prior row, or when the prior
// impact score is zero.
func (s *LeaderboardService) trendFor(seasonID string, entry *models.LeaderboardEntry) (models.Trend, error) {
	prevStart, ok := models.PreviousPeriodStart(entry.PeriodStart, entry.PeriodType)
	if !ok {
		return "", nil
	}

	prev, err := s.statsRepo.GetByKey(entry.UserID, seasonID, entry.PeriodType, prevStart)
	if err != nil {
		return "", err
	}
	if prev == nil || prev.ImpactScore == 0 {
		return "", nil
	}

	return ComputeTrend(entry.ImpactScore, prev.ImpactScore), nil
}

// ComputeTrend classifies current against previous with a 5% band
func ComputeTrend(current, previous float64) models.Trend {
	switch {
	case current > previous*1.05:
		return models.TrendUp
	case current < previous*0.95:
		return models.TrendDown
	}
	return models.TrendNeutral
}
