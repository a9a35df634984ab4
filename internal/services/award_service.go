package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/pkg/logger"
	"github.com/sirupsen/logrus"
)

// minRookieActiveWeeks is the participation floor for Rookie of the Year
const minRookieActiveWeeks = 4

// monthReferenceOffset places the absence reference date mid-month
const monthReferenceOffset = 15

type AwardService struct {
	statsRepo      *repositories.PlayerPeriodStatsRepository
	awardRepo      *repositories.AwardRepository
	playRepo       *repositories.PlayOfDayRepository
	absenceRepo    *repositories.AbsenceRepository
	commitRepo     *repositories.CommitRepository
	identityRepo   *repositories.GitIdentityRepository
	seasonRepo     *repositories.SeasonRepository
	scoringService *ScoringService
}

func NewAwardService(
	statsRepo *repositories.PlayerPeriodStatsRepository,
	awardRepo *repositories.AwardRepository,
	playRepo *repositories.PlayOfDayRepository,
	absenceRepo *repositories.AbsenceRepository,
	commitRepo *repositories.CommitRepository,
	identityRepo *repositories.GitIdentityRepository,
	seasonRepo *repositories.SeasonRepository,
	scoringService *ScoringService,
) *AwardService {
	return &AwardService{
		statsRepo:      statsRepo,
		awardRepo:      awardRepo,
		playRepo:       playRepo,
		absenceRepo:    absenceRepo,
		commitRepo:     commitRepo,
		identityRepo:   identityRepo,
		seasonRepo:     seasonRepo,
		scoringService: scoringService,
	}
}

// RunForAllActiveSeasons evaluates awards for every active season. A
// failure in one season is logged and does not stop evaluation of the
// others.
func (s *AwardService) RunForAllActiveSeasons(now time.Time) error {
	seasons, err := s.seasonRepo.GetAllActive()
	if err != nil {
		return err
	}

	for _, season := range seasons {
		if err := s.RunForSeason(season, now); err != nil {
			logger.WithFields(logrus.Fields{
				"season_id":  season.ID,
				"project_id": season.ProjectID,
			}).WithError(err).Error("Award evaluation failed for season")
		}
	}

	return nil
}

// RunForSeason evaluates every award whose period has completed as of now
func (s *AwardService) RunForSeason(season *models.Season, now time.Time) error {
	today := models.TruncateToDay(now)

	yesterday := today.AddDate(0, 0, -1)
	if season.Contains(yesterday) {
		if _, err := s.SelectPlayOfDay(season, yesterday); err != nil {
			return fmt.Errorf("play of day: %w", err)
		}
	}

	weekStart, err := models.PeriodStart(now, models.PeriodWeek, season)
	if err != nil {
		return err
	}
	// A season starting mid-week keys its first commits to the Monday
	// before the start, so evaluate any week that overlaps the season
	lastWeek := weekStart.AddDate(0, 0, -7)
	if !lastWeek.AddDate(0, 0, 6).Before(models.TruncateToDay(season.StartAt)) {
		if _, err := s.SelectPlayerOfPeriod(season, models.PeriodWeek, lastWeek); err != nil {
			return fmt.Errorf("player of week: %w", err)
		}
	}

	monthStart, err := models.PeriodStart(now, models.PeriodMonth, season)
	if err != nil {
		return err
	}
	lastMonth := monthStart.AddDate(0, -1, 0)
	if !models.MonthEnd(lastMonth).Before(models.TruncateToDay(season.StartAt)) {
		if _, err := s.SelectPlayerOfPeriod(season, models.PeriodMonth, lastMonth); err != nil {
			return fmt.Errorf("player of month: %w", err)
		}
		if _, err := s.SelectRookieOfMonth(season, lastMonth); err != nil {
			return fmt.Errorf("rookie of month: %w", err)
		}
	}

	if now.After(season.EndAt) {
		if _, err := s.SelectMVP(season); err != nil {
			return fmt.Errorf("mvp: %w", err)
		}
		if _, err := s.SelectRookieOfYear(season); err != nil {
			return fmt.Errorf("rookie of year: %w", err)
		}
	}

	return nil
}

// SelectPlayerOfPeriod awards the highest-impact player of a completed
// week or month. The winner must not be absent on the period's reference
// date: the period start for weeks, mid-month for months. Returns nil
// without error when the award already exists, the bucket is empty, or
// the candidate is absent.
func (s *AwardService) SelectPlayerOfPeriod(season *models.Season, periodType models.PeriodType, periodStart time.Time) (*models.Award, error) {
	var awardType models.AwardType
	var referenceDate time.Time
	switch periodType {
	case models.PeriodWeek:
		awardType = models.AwardPlayerOfWeek
		referenceDate = periodStart
	case models.PeriodMonth:
		awardType = models.AwardPlayerOfMonth
		referenceDate = periodStart.AddDate(0, 0, monthReferenceOffset)
	default:
		return nil, fmt.Errorf("no player award for period type %s", periodType)
	}

	exists, err := s.awardRepo.Exists(season.ID, periodType, periodStart, awardType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	candidate, err := s.statsRepo.GetTopForPeriod(season.ID, periodType, periodStart)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, nil
	}

	absent, err := s.absenceRepo.IsUserAbsentOn(candidate.UserID, referenceDate)
	if err != nil {
		return nil, err
	}
	if absent {
		logger.WithFields(logrus.Fields{
			"season_id":  season.ID,
			"award_type": awardType,
			"user_id":    candidate.UserID,
		}).Info("Skipping award, candidate is absent on reference date")
		return nil, nil
	}

	award := models.NewAward(season.ID, periodType, periodStart, awardType, candidate.UserID, candidate.ImpactScore)
	s.attachEntryMetadata(award, candidate)
	return s.createAward(award)
}

// SelectMVP awards the player with the highest impact score summed over
// every period row of the season. Each commit lands in four buckets, so
// the stored score is four times the per-commit impact. No absence check
// applies.
func (s *AwardService) SelectMVP(season *models.Season) (*models.Award, error) {
	periodStart := models.TruncateToDay(season.StartAt)

	exists, err := s.awardRepo.Exists(season.ID, models.PeriodSeason, periodStart, models.AwardMVP)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	totals, err := s.statsRepo.GetSeasonTotals(season.ID)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, nil
	}
	best := totals[0]

	award := models.NewAward(season.ID, models.PeriodSeason, periodStart, models.AwardMVP, best.UserID, best.ImpactScore)
	s.attachTotalsMetadata(award, best)
	return s.createAward(award)
}

// IsRookie reports whether the user has no recorded stats in any season
// of the project starting before the given season.
func (s *AwardService) IsRookie(userID string, season *models.Season) (bool, error) {
	hasEarlier, err := s.statsRepo.HasStatsInEarlierSeason(userID, season.ProjectID, season.StartAt)
	if err != nil {
		return false, err
	}
	return !hasEarlier, nil
}

// rookieCandidate is a rookie's average score over active periods
type rookieCandidate struct {
	userID      string
	average     float64
	total       float64
	activeCount int
}

// SelectRookieOfMonth awards the rookie with the highest average impact
// score per active day in the month. At least one active day is
// required. Ties break on total impact score. The winner must not be
// absent mid-month; an absent would-be winner skips the month entirely.
func (s *AwardService) SelectRookieOfMonth(season *models.Season, monthStart time.Time) (*models.Award, error) {
	exists, err := s.awardRepo.Exists(season.ID, models.PeriodMonth, monthStart, models.AwardRookieOfMonth)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	best, err := s.bestRookie(season, models.PeriodDay, monthStart, models.MonthEnd(monthStart), 1)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil
	}

	referenceDate := monthStart.AddDate(0, 0, monthReferenceOffset)
	absent, err := s.absenceRepo.IsUserAbsentOn(best.userID, referenceDate)
	if err != nil {
		return nil, err
	}
	if absent {
		logger.WithFields(logrus.Fields{
			"season_id": season.ID,
			"user_id":   best.userID,
		}).Info("Skipping rookie of month, candidate is absent on reference date")
		return nil, nil
	}

	award := models.NewAward(season.ID, models.PeriodMonth, monthStart, models.AwardRookieOfMonth, best.userID, best.average)
	s.attachRookieMetadata(award, best, "active_days")
	return s.createAward(award)
}

// SelectRookieOfYear awards the rookie with the highest average impact
// score per active week across the season. At least four active weeks
// are required. Ties break on total impact score. No absence check
// applies.
func (s *AwardService) SelectRookieOfYear(season *models.Season) (*models.Award, error) {
	periodStart := models.TruncateToDay(season.StartAt)

	exists, err := s.awardRepo.Exists(season.ID, models.PeriodSeason, periodStart, models.AwardRookieOfYear)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	best, err := s.bestRookie(season, models.PeriodWeek, time.Time{}, time.Time{}, minRookieActiveWeeks)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, nil
	}

	award := models.NewAward(season.ID, models.PeriodSeason, periodStart, models.AwardRookieOfYear, best.userID, best.average)
	s.attachRookieMetadata(award, best, "active_weeks")
	return s.createAward(award)
}

// bestRookie finds the rookie with the highest average impact score per
// active period of the given type, among rookies with at least minActive
// active periods. Returns nil when no rookie qualifies.
func (s *AwardService) bestRookie(season *models.Season, periodType models.PeriodType, from, to time.Time, minActive int) (*rookieCandidate, error) {
	userIDs, err := s.statsRepo.GetDistinctUserIDs(season.ID)
	if err != nil {
		return nil, err
	}

	var best *rookieCandidate
	for _, userID := range userIDs {
		rookie, err := s.IsRookie(userID, season)
		if err != nil {
			return nil, err
		}
		if !rookie {
			continue
		}

		periods, err := s.statsRepo.GetActivePeriods(userID, season.ID, periodType, from, to)
		if err != nil {
			return nil, err
		}
		if len(periods) < minActive {
			continue
		}

		var total float64
		for _, p := range periods {
			total += p.ImpactScore
		}
		candidate := &rookieCandidate{
			userID:      userID,
			average:     total / float64(len(periods)),
			total:       total,
			activeCount: len(periods),
		}

		if best == nil ||
			candidate.average > best.average ||
			(candidate.average == best.average && candidate.total > best.total) {
			best = candidate
		}
	}

	return best, nil
}

// SelectPlayOfDay awards the highest-scoring non-merge commit of a date.
// The play score subtracts the absolute turnover penalty instead of
// adding the signed value the impact score uses. The day is skipped when
// the winning commit's author has no git identity mapping.
func (s *AwardService) SelectPlayOfDay(season *models.Season, date time.Time) (*models.PlayOfTheDay, error) {
	date = models.TruncateToDay(date)

	exists, err := s.playRepo.Exists(season.ID, date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	commits, err := s.commitRepo.GetNonMergeByProjectAndDate(season.ProjectID, date)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, nil
	}

	coeffs, err := s.scoringService.GetOrCreateCoefficients(season.ProjectID)
	if err != nil {
		return nil, err
	}

	var bestCommit *models.Commit
	var bestScore float64
	for _, commit := range commits {
		score := CalculatePlayOfDayScore(commit, coeffs)
		if bestCommit == nil || score > bestScore {
			bestCommit = commit
			bestScore = score
		}
	}

	userID, err := s.identityRepo.GetUserIDByEmail(bestCommit.AuthorEmail)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		logger.WithFields(logrus.Fields{
			"season_id": season.ID,
			"sha":       bestCommit.SHA,
		}).Info("Skipping play of the day, winning commit author is unmapped")
		return nil, nil
	}

	play := models.NewPlayOfTheDay(season.ID, date, bestCommit.SHA, userID, bestScore)
	metrics := CalculateMetrics(bestCommit, coeffs)
	if raw, err := json.Marshal(map[string]interface{}{
		"pts":           metrics.PTS,
		"reb":           metrics.REB,
		"ast":           metrics.AST,
		"blk":           metrics.BLK,
		"tov":           metrics.TOV,
		"message_title": bestCommit.MessageTitle,
	}); err == nil {
		play.SetMetadata(string(raw))
	}

	if err := s.playRepo.Create(play); err != nil {
		if repositories.IsUniqueConstraintErr(err) {
			return nil, nil
		}
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"season_id": season.ID,
		"sha":       bestCommit.SHA,
		"user_id":   userID,
		"score":     bestScore,
	}).Info("Play of the day selected")

	return play, nil
}

// createAward persists an award, treating a unique key conflict from a
// concurrent run as an already-decided period.
func (s *AwardService) createAward(award *models.Award) (*models.Award, error) {
	if err := s.awardRepo.Create(award); err != nil {
		if repositories.IsUniqueConstraintErr(err) {
			return nil, nil
		}
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"season_id":    award.SeasonID,
		"award_type":   award.AwardType,
		"period_start": award.PeriodStart.Format("2006-01-02"),
		"user_id":      award.UserID,
		"score":        award.Score,
	}).Info("Award created")

	return award, nil
}

func (s *AwardService) attachEntryMetadata(award *models.Award, entry *models.LeaderboardEntry) {
	raw, err := json.Marshal(map[string]interface{}{
		"pts":     entry.PTS,
		"reb":     entry.REB,
		"ast":     entry.AST,
		"blk":     entry.BLK,
		"tov":     entry.TOV,
		"commits": entry.Commits,
	})
	if err != nil {
		return
	}
	award.SetMetadata(string(raw))
}

func (s *AwardService) attachTotalsMetadata(award *models.Award, totals *models.PlayerTotals) {
	raw, err := json.Marshal(map[string]interface{}{
		"pts":     totals.PTS,
		"reb":     totals.REB,
		"ast":     totals.AST,
		"blk":     totals.BLK,
		"tov":     totals.TOV,
		"commits": totals.Commits,
	})
	if err != nil {
		return
	}
	award.SetMetadata(string(raw))
}

func (s *AwardService) attachRookieMetadata(award *models.Award, candidate *rookieCandidate, periodField string) {
	raw, err := json.Marshal(map[string]interface{}{
		"average_impact": candidate.average,
		"total_impact":   candidate.total,
		periodField:      candidate.activeCount,
	})
	if err != nil {
		return
	}
	award.SetMetadata(string(raw))
}

// ListAwards returns awards filtered by season, user, and type
func (s *AwardService) ListAwards(seasonID, userID string, awardType models.AwardType, offset, limit int) ([]*models.Award, error) {
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.awardRepo.List(seasonID, userID, awardType, offset, limit)
}

// ListPlaysOfDay returns plays of the day for a season
func (s *AwardService) ListPlaysOfDay(seasonID string, offset, limit int) ([]*models.PlayOfTheDay, error) {
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.playRepo.List(seasonID, offset, limit)
}
