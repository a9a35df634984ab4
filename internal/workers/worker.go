package workers

import (
	"context"
	"log"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/services"
)

const (
	idlePollInterval  = 10 * time.Second
	errorPollInterval = 5 * time.Second
)

// Worker is a background job processor bound to one job type
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	GetJobType() models.JobType
	GetWorkerID() string
}

// BaseWorker carries the identity, lifecycle and claim-process-complete
// polling loop shared by all workers. Concrete workers supply the job
// handler.
type BaseWorker struct {
	WorkerID   string
	JobType    models.JobType
	Running    bool
	StopChan   chan struct{}
	jobService *services.JobService
}

// NewBaseWorker creates a worker shell for the given job type
func NewBaseWorker(workerID string, jobType models.JobType, jobService *services.JobService) *BaseWorker {
	return &BaseWorker{
		WorkerID:   workerID,
		JobType:    jobType,
		Running:    false,
		StopChan:   make(chan struct{}),
		jobService: jobService,
	}
}

// GetJobType returns the job type this worker handles
func (w *BaseWorker) GetJobType() models.JobType {
	return w.JobType
}

// GetWorkerID returns the worker's unique identifier
func (w *BaseWorker) GetWorkerID() string {
	return w.WorkerID
}

// Stop gracefully stops the worker
func (w *BaseWorker) Stop() error {
	if w.Running {
		w.Running = false
		close(w.StopChan)
	}
	return nil
}

// IsRunning checks if the worker is currently running
func (w *BaseWorker) IsRunning() bool {
	return w.Running
}

// pollJobs claims and processes jobs of the worker's type until the
// context is cancelled or the worker is stopped. A non-nil handler error
// fails the job; nil completes it.
func (w *BaseWorker) pollJobs(ctx context.Context, handle func(ctx context.Context, job *models.Job) error) error {
	w.Running = true
	log.Printf("Worker %s (%s) started", w.WorkerID, w.JobType)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			log.Printf("Worker %s stopping", w.WorkerID)
			return nil
		default:
			job, err := w.jobService.ClaimNextJob(w.JobType, w.WorkerID)
			if err != nil {
				log.Printf("Worker %s error claiming job: %v", w.WorkerID, err)
				time.Sleep(errorPollInterval)
				continue
			}

			if job == nil {
				time.Sleep(idlePollInterval)
				continue
			}

			w.runJob(ctx, job, handle)
		}
	}
}

// runJob executes the handler and settles the job's final status
func (w *BaseWorker) runJob(ctx context.Context, job *models.Job, handle func(ctx context.Context, job *models.Job) error) {
	log.Printf("Worker %s processing job %s", w.WorkerID, job.ID)

	if err := handle(ctx, job); err != nil {
		log.Printf("Worker %s job %s failed: %v", w.WorkerID, job.ID, err)
		if err := w.jobService.FailJob(job, err.Error()); err != nil {
			log.Printf("Worker %s error failing job %s: %v", w.WorkerID, job.ID, err)
		}
		return
	}

	if err := w.jobService.CompleteJob(job); err != nil {
		log.Printf("Worker %s error completing job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	log.Printf("Worker %s completed job %s", w.WorkerID, job.ID)
}
