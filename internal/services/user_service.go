package services

import (
	"errors"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
)

// ErrUserNotFound is returned when a user does not exist
var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	userRepo     *repositories.UserRepository
	identityRepo *repositories.GitIdentityRepository
	absenceRepo  *repositories.AbsenceRepository
	statsRepo    *repositories.PlayerPeriodStatsRepository
	seasonRepo   *repositories.SeasonRepository
}

func NewUserService(
	userRepo *repositories.UserRepository,
	identityRepo *repositories.GitIdentityRepository,
	absenceRepo *repositories.AbsenceRepository,
	statsRepo *repositories.PlayerPeriodStatsRepository,
	seasonRepo *repositories.SeasonRepository,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		absenceRepo:  absenceRepo,
		statsRepo:    statsRepo,
		seasonRepo:   seasonRepo,
	}
}

// CreateUser creates a new active user
func (s *UserService) CreateUser(name, email string) (*models.User, error) {
	user := models.NewUser(name, email)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RetireUser marks a user as retired, excluding them from leaderboards
func (s *UserService) RetireUser(id string) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateStatus(id, models.UserRetired)
}

// AddGitIdentity maps a git author email to a user. Commits authored
// under the email start counting toward the user's stats on the next
// aggregation pass.
func (s *UserService) AddGitIdentity(userID, gitEmail string) (*models.GitIdentity, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if gitEmail == "" {
		return nil, errors.New("git email is required")
	}

	identity := models.NewGitIdentity(userID, gitEmail)
	if err := s.identityRepo.Create(identity); err != nil {
		if repositories.IsUniqueConstraintErr(err) {
			return nil, errors.New("git email is already mapped")
		}
		return nil, err
	}
	return identity, nil
}

// GetGitIdentities returns all git emails mapped to a user
func (s *UserService) GetGitIdentities(userID string) ([]*models.GitIdentity, error) {
	return s.identityRepo.GetByUserID(userID)
}

// DeclareAbsence records an absence date range for a user in a season
func (s *UserService) DeclareAbsence(userID, seasonID string, startDate, endDate time.Time, reason string) (*models.Absence, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	absence := models.NewAbsence(userID, seasonID, startDate, endDate)
	if reason != "" {
		absence.Reason = &reason
	}
	if err := absence.Validate(); err != nil {
		return nil, err
	}
	if err := s.absenceRepo.Create(absence); err != nil {
		return nil, err
	}
	return absence, nil
}

// PlayerSeasonStats is the per-season read model for one player
type PlayerSeasonStats struct {
	User    *models.User         `json:"user"`
	Season  *models.Season       `json:"season"`
	Totals  *models.PlayerTotals `json:"totals"`
	Periods int                  `json:"active_days"`
}

// GetPlayerSeasonStats returns a user's summed day-bucket stats for a season
func (s *UserService) GetPlayerSeasonStats(userID, seasonID string) (*PlayerSeasonStats, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	season, err := s.seasonRepo.GetByID(seasonID)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, ErrSeasonNotFound
	}

	totals, err := s.statsRepo.GetUserTotals(userID, seasonID, models.PeriodDay)
	if err != nil {
		return nil, err
	}

	activeDays, err := s.statsRepo.GetActivePeriods(userID, seasonID, models.PeriodDay, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	return &PlayerSeasonStats{
		User:    user,
		Season:  season,
		Totals:  totals,
		Periods: len(activeDays),
	}, nil
}

// PlayerCareerStats sums a player's season buckets across every season
type PlayerCareerStats struct {
	User    *models.User         `json:"user"`
	Totals  *models.PlayerTotals `json:"totals"`
	Seasons int                  `json:"seasons_played"`
}

// GetPlayerCareerStats returns a user's all-time totals
func (s *UserService) GetPlayerCareerStats(userID string) (*PlayerCareerStats, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	totals, seasons, err := s.statsRepo.GetUserCareerTotals(userID)
	if err != nil {
		return nil, err
	}

	return &PlayerCareerStats{
		User:    user,
		Totals:  totals,
		Seasons: seasons,
	}, nil
}
