package services

import (
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/pkg/logger"
	"github.com/sirupsen/logrus"
)

type SeasonService struct {
	seasonRepo  *repositories.SeasonRepository
	projectRepo *repositories.ProjectRepository
}

func NewSeasonService(seasonRepo *repositories.SeasonRepository, projectRepo *repositories.ProjectRepository) *SeasonService {
	return &SeasonService{
		seasonRepo:  seasonRepo,
		projectRepo: projectRepo,
	}
}

// CreateSeason creates a draft season for a project
func (s *SeasonService) CreateSeason(projectID, name string, startAt, endAt time.Time) (*models.Season, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	season := models.NewSeason(projectID, name, startAt, endAt)
	if err := season.Validate(); err != nil {
		return nil, err
	}
	if err := s.seasonRepo.Create(season); err != nil {
		return nil, err
	}
	return season, nil
}

// GetSeason returns a season by ID
func (s *SeasonService) GetSeason(id string) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, ErrSeasonNotFound
	}
	return season, nil
}

// GetSeasonsByProject returns all seasons of a project
func (s *SeasonService) GetSeasonsByProject(projectID string) ([]*models.Season, error) {
	return s.seasonRepo.GetByProjectID(projectID)
}

// ActivateSeason makes a season the single active season of its project.
// Any other active season of the project is closed first.
func (s *SeasonService) ActivateSeason(id string) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, ErrSeasonNotFound
	}

	current, err := s.seasonRepo.GetActiveByProjectID(season.ProjectID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ID != season.ID {
		if err := s.seasonRepo.UpdateStatus(current.ID, models.SeasonClosed); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"season_id":  current.ID,
			"project_id": season.ProjectID,
		}).Info("Closed previously active season")
	}

	if err := s.seasonRepo.UpdateStatus(season.ID, models.SeasonActive); err != nil {
		return nil, err
	}
	season.Status = models.SeasonActive
	return season, nil
}

// CloseSeason marks a season as closed
func (s *SeasonService) CloseSeason(id string) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, ErrSeasonNotFound
	}

	if err := s.seasonRepo.UpdateStatus(season.ID, models.SeasonClosed); err != nil {
		return nil, err
	}
	season.Status = models.SeasonClosed
	return season, nil
}
