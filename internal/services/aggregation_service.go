package services

import (
	"errors"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrNoActiveSeason is returned when a project has no active season
var ErrNoActiveSeason = errors.New("no active season for project")

// allPeriodTypes lists the buckets every commit rolls into
var allPeriodTypes = []models.PeriodType{
	models.PeriodDay,
	models.PeriodWeek,
	models.PeriodMonth,
	models.PeriodSeason,
}

type AggregationService struct {
	commitRepo     *repositories.CommitRepository
	statsRepo      *repositories.PlayerPeriodStatsRepository
	identityRepo   *repositories.GitIdentityRepository
	seasonRepo     *repositories.SeasonRepository
	scoringService *ScoringService
}

func NewAggregationService(
	commitRepo *repositories.CommitRepository,
	statsRepo *repositories.PlayerPeriodStatsRepository,
	identityRepo *repositories.GitIdentityRepository,
	seasonRepo *repositories.SeasonRepository,
	scoringService *ScoringService,
) *AggregationService {
	return &AggregationService{
		commitRepo:     commitRepo,
		statsRepo:      statsRepo,
		identityRepo:   identityRepo,
		seasonRepo:     seasonRepo,
		scoringService: scoringService,
	}
}

// AggregateCommits rolls a set of freshly ingested commits into the
// player period buckets of the project's active season. Callers must
// pass each commit at most once; replaying a commit double-counts it.
// Commits by unmapped author emails and commits outside the season
// boundaries are skipped silently. Returns the number of commits that
// contributed stats.
func (s *AggregationService) AggregateCommits(projectID string, commits []*models.Commit) (int, error) {
	season, err := s.seasonRepo.GetActiveByProjectID(projectID)
	if err != nil {
		return 0, err
	}
	if season == nil {
		return 0, ErrNoActiveSeason
	}
	return s.aggregateInto(projectID, season, commits)
}

func (s *AggregationService) aggregateInto(projectID string, season *models.Season, commits []*models.Commit) (int, error) {
	coeffs, err := s.scoringService.GetOrCreateCoefficients(projectID)
	if err != nil {
		return 0, err
	}

	// Cache email lookups; one author usually appears many times per batch
	userIDByEmail := make(map[string]string)

	counted := 0
	for _, commit := range commits {
		if !season.Contains(commit.CommitDate) {
			continue
		}

		userID, ok := userIDByEmail[commit.AuthorEmail]
		if !ok {
			userID, err = s.identityRepo.GetUserIDByEmail(commit.AuthorEmail)
			if err != nil {
				return counted, err
			}
			userIDByEmail[commit.AuthorEmail] = userID
		}
		if userID == "" {
			continue
		}

		metrics := CalculateMetrics(commit, coeffs)
		for _, periodType := range allPeriodTypes {
			periodStart, err := models.PeriodStart(commit.CommitDate, periodType, season)
			if err != nil {
				return counted, err
			}
			stats := models.NewPlayerPeriodStats(userID, season.ID, periodType, periodStart)
			stats.AddCommit(commit, metrics)
			if err := s.statsRepo.UpsertAdd(stats); err != nil {
				return counted, err
			}
		}
		counted++
	}

	logger.WithFields(logrus.Fields{
		"project_id": projectID,
		"season_id":  season.ID,
		"commits":    len(commits),
		"counted":    counted,
	}).Info("Aggregated commits into period stats")

	return counted, nil
}

// ReaggregateSeason drops every period row of a season and replays all
// commits in the season boundaries through the current coefficients.
// Used after a coefficient change, since historical rows are not
// recomputed automatically.
func (s *AggregationService) ReaggregateSeason(projectID, seasonID string) (int, error) {
	season, err := s.seasonRepo.GetByID(seasonID)
	if err != nil {
		return 0, err
	}
	if season == nil {
		return 0, ErrSeasonNotFound
	}

	if err := s.statsRepo.DeleteBySeasonID(seasonID); err != nil {
		return 0, err
	}

	// Contains treats the end date as inclusive, so fetch one day past it
	commits, err := s.commitRepo.GetByProjectAndRange(projectID, season.StartAt, season.EndAt.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	return s.aggregateInto(projectID, season, commits)
}
