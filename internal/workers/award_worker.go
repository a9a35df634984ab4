package workers

import (
	"context"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/internal/services"
)

// AwardWorker evaluates completed award periods for award jobs
type AwardWorker struct {
	*BaseWorker
	awardService *services.AwardService
	seasonRepo   *repositories.SeasonRepository
}

// NewAwardWorker creates a new award worker
func NewAwardWorker(
	workerID string,
	jobService *services.JobService,
	awardService *services.AwardService,
	seasonRepo *repositories.SeasonRepository,
) *AwardWorker {
	return &AwardWorker{
		BaseWorker:   NewBaseWorker(workerID, models.JobTypeAward, jobService),
		awardService: awardService,
		seasonRepo:   seasonRepo,
	}
}

// Start begins the award worker process
func (w *AwardWorker) Start(ctx context.Context) error {
	return w.pollJobs(ctx, w.handleAwardJob)
}

// handleAwardJob evaluates awards for the active season of the job's project
func (w *AwardWorker) handleAwardJob(ctx context.Context, job *models.Job) error {
	season, err := w.seasonRepo.GetActiveByProjectID(job.ProjectID)
	if err != nil {
		return err
	}
	if season == nil {
		return nil
	}
	return w.awardService.RunForSeason(season, time.Now())
}
