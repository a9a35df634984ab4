package workers

import (
	"context"
	"errors"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/services"
)

// SyncWorker pulls commits from GitHub for sync jobs
type SyncWorker struct {
	*BaseWorker
	syncService *services.GitHubSyncService
}

// NewSyncWorker creates a new sync worker
func NewSyncWorker(workerID string, jobService *services.JobService, syncService *services.GitHubSyncService) *SyncWorker {
	return &SyncWorker{
		BaseWorker:  NewBaseWorker(workerID, models.JobTypeSync, jobService),
		syncService: syncService,
	}
}

// Start begins the sync worker process
func (w *SyncWorker) Start(ctx context.Context) error {
	return w.pollJobs(ctx, w.handleSyncJob)
}

func (w *SyncWorker) handleSyncJob(ctx context.Context, job *models.Job) error {
	if job.RepositoryID == nil {
		return errors.New("sync job has no repository")
	}
	return w.syncService.SyncRepository(ctx, *job.RepositoryID)
}
