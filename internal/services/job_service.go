package services

import (
	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
)

type JobService struct {
	jobRepo *repositories.JobRepository
}

func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// EnqueueJob creates a pending job unless one of the same type is
// already pending or running for the project
func (s *JobService) EnqueueJob(projectID string, jobType models.JobType, repositoryID string) (*models.Job, error) {
	busy, err := s.jobRepo.HasPendingOrRunning(projectID, jobType)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, nil
	}

	job := models.NewJob(projectID, jobType)
	if repositoryID != "" {
		job.SetRepository(repositoryID)
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// ClaimNextJob atomically claims the oldest pending job of a type for a
// worker. Returns nil when the queue is empty or another worker won the
// claim.
func (s *JobService) ClaimNextJob(jobType models.JobType, workerID string) (*models.Job, error) {
	return s.jobRepo.GetNextPendingJob(jobType, workerID)
}

// CompleteJob marks a job as completed
func (s *JobService) CompleteJob(job *models.Job) error {
	job.MarkCompleted()
	return s.jobRepo.Update(job)
}

// FailJob marks a job as failed with a message
func (s *JobService) FailJob(job *models.Job, message string) error {
	job.MarkFailed(message)
	return s.jobRepo.Update(job)
}
