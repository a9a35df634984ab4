package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitcourt/internal/models"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, project_id, repository_id, job_type, status, error_message,
	       worker_id, started_at, completed_at, created_at, updated_at`

// Create creates a new job
func (r *JobRepository) Create(job *models.Job) error {
	query := `
		INSERT INTO jobs (
			id, project_id, repository_id, job_type, status, error_message,
			worker_id, started_at, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID, job.ProjectID, job.RepositoryID, string(job.JobType), string(job.Status),
		job.ErrorMessage, job.WorkerID, job.StartedAt, job.CompletedAt, job.CreatedAt, job.UpdatedAt,
	)

	return err
}

// GetNextPendingJob atomically claims the oldest pending job of the given
// type for a worker. Returns nil when no job is available.
func (r *JobRepository) GetNextPendingJob(jobType models.JobType, workerID string) (*models.Job, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE job_type = ? AND status = 'pending'
		ORDER BY created_at ASC
		LIMIT 1
	`

	job := &models.Job{}
	err = tx.QueryRow(query, string(jobType)).Scan(
		&job.ID, &job.ProjectID, &job.RepositoryID, &job.JobType, &job.Status,
		&job.ErrorMessage, &job.WorkerID, &job.StartedAt, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	claim := `
		UPDATE jobs SET status = 'in-progress', worker_id = ?, started_at = CURRENT_TIMESTAMP,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = 'pending'
	`
	result, err := tx.Exec(claim, workerID, job.ID)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Another worker claimed it first
		return nil, tx.Commit()
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	job.Status = models.JobStatusInProgress
	job.WorkerID = &workerID
	return job, nil
}

// Update updates a job's status fields
func (r *JobRepository) Update(job *models.Job) error {
	query := `
		UPDATE jobs SET
			status = ?, error_message = ?, worker_id = ?,
			started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		string(job.Status), job.ErrorMessage, job.WorkerID,
		job.StartedAt, job.CompletedAt, job.UpdatedAt, job.ID,
	)

	return err
}

// HasPendingOrRunning checks whether a job of the given type is already
// queued or running for a project. Used to keep scheduled jobs
// non-overlapping.
func (r *JobRepository) HasPendingOrRunning(projectID string, jobType models.JobType) (bool, error) {
	query := `
		SELECT COUNT(*) FROM jobs
		WHERE project_id = ? AND job_type = ? AND status IN ('pending', 'in-progress')
	`
	var count int
	err := r.db.QueryRow(query, projectID, string(jobType)).Scan(&count)
	return count > 0, err
}
