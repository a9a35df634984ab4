package models

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	JobTypeSync      JobType = "sync"
	JobTypeAggregate JobType = "aggregate"
	JobTypeAward     JobType = "award"
)

// JobStatus represents the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job represents a background job
type Job struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"project_id"`
	RepositoryID *string    `json:"repository_id"`
	JobType      JobType    `json:"job_type"`
	Status       JobStatus  `json:"status"`
	ErrorMessage *string    `json:"error_message"`
	WorkerID     *string    `json:"worker_id"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewJob creates a new Job with a generated UUID
func NewJob(projectID string, jobType JobType) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		JobType:   jobType,
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetRepository scopes the job to a single repository
func (j *Job) SetRepository(repositoryID string) {
	j.RepositoryID = &repositoryID
}

// IsPending checks if the job is pending
func (j *Job) IsPending() bool {
	return j.Status == JobStatusPending
}

// MarkStarted marks the job as started
func (j *Job) MarkStarted() {
	now := time.Now()
	j.Status = JobStatusInProgress
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkCompleted marks the job as completed
func (j *Job) MarkCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkFailed marks the job as failed with an error message
func (j *Job) MarkFailed(message string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = &message
	j.CompletedAt = &now
	j.UpdatedAt = now
}
