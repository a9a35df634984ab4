package services

import (
	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
)

type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	repoRepo    *repositories.RepositoryRepository
}

func NewProjectService(projectRepo *repositories.ProjectRepository, repoRepo *repositories.RepositoryRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		repoRepo:    repoRepo,
	}
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(name string) (*models.Project, error) {
	project := models.NewProject(name)
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns a project by ID
func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// GetAllProjects returns all projects
func (s *ProjectService) GetAllProjects() ([]*models.Project, error) {
	return s.projectRepo.GetAll()
}

// AddRepository registers a repository under a project
func (s *ProjectService) AddRepository(projectID, owner, name, branch string) (*models.Repository, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	repo := models.NewRepository(projectID, owner, name)
	if branch != "" {
		repo.Branch = branch
	}
	if err := repo.Validate(); err != nil {
		return nil, err
	}
	if err := s.repoRepo.Create(repo); err != nil {
		return nil, err
	}
	return repo, nil
}

// GetRepository returns a repository by ID
func (s *ProjectService) GetRepository(id string) (*models.Repository, error) {
	repo, err := s.repoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, ErrRepositoryNotFound
	}
	return repo, nil
}

// GetRepositories returns all repositories of a project
func (s *ProjectService) GetRepositories(projectID string) ([]*models.Repository, error) {
	return s.repoRepo.GetByProjectID(projectID)
}
