package services

import (
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/pkg/logger"
)

// SchedulerService enqueues the periodic sync, aggregation and award
// jobs once per hour
type SchedulerService struct {
	projectRepo *repositories.ProjectRepository
	repoRepo    *repositories.RepositoryRepository
	jobService  *JobService
	stop        chan struct{}
}

func NewSchedulerService(
	projectRepo *repositories.ProjectRepository,
	repoRepo *repositories.RepositoryRepository,
	jobService *JobService,
) *SchedulerService {
	return &SchedulerService{
		projectRepo: projectRepo,
		repoRepo:    repoRepo,
		jobService:  jobService,
		stop:        make(chan struct{}),
	}
}

// StartScheduler starts the hourly scheduling loop
func (s *SchedulerService) StartScheduler() {
	go func() {
		for {
			if err := s.scheduleAllProjects(); err != nil {
				logger.WithError(err).Error("Scheduler pass failed")
			}

			// Sleep until the next hour boundary
			now := time.Now()
			next := now.Add(1 * time.Hour)
			next = time.Date(next.Year(), next.Month(), next.Day(), next.Hour(), 0, 0, 0, next.Location())

			select {
			case <-time.After(next.Sub(now)):
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the scheduling loop
func (s *SchedulerService) Stop() {
	close(s.stop)
}

// scheduleAllProjects enqueues one sync job per repository plus an
// aggregate and an award job for every project
func (s *SchedulerService) scheduleAllProjects() error {
	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return err
	}

	for _, project := range projects {
		repos, err := s.repoRepo.GetByProjectID(project.ID)
		if err != nil {
			logger.WithField("project_id", project.ID).WithError(err).Error("Failed to list repositories for scheduling")
			continue
		}

		for _, repo := range repos {
			if _, err := s.jobService.EnqueueJob(project.ID, models.JobTypeSync, repo.ID); err != nil {
				logger.WithField("repository_id", repo.ID).WithError(err).Error("Failed to enqueue sync job")
			}
		}

		if _, err := s.jobService.EnqueueJob(project.ID, models.JobTypeAggregate, ""); err != nil {
			logger.WithField("project_id", project.ID).WithError(err).Error("Failed to enqueue aggregate job")
		}
		if _, err := s.jobService.EnqueueJob(project.ID, models.JobTypeAward, ""); err != nil {
			logger.WithField("project_id", project.ID).WithError(err).Error("Failed to enqueue award job")
		}
	}

	return nil
}
