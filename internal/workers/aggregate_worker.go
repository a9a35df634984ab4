package workers

import (
	"context"
	"log"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/internal/services"
)

// AggregateWorker replays a project's commits into period stats for
// aggregate jobs
type AggregateWorker struct {
	*BaseWorker
	aggregationService *services.AggregationService
	seasonRepo         *repositories.SeasonRepository
}

// NewAggregateWorker creates a new aggregate worker
func NewAggregateWorker(
	workerID string,
	jobService *services.JobService,
	aggregationService *services.AggregationService,
	seasonRepo *repositories.SeasonRepository,
) *AggregateWorker {
	return &AggregateWorker{
		BaseWorker:         NewBaseWorker(workerID, models.JobTypeAggregate, jobService),
		aggregationService: aggregationService,
		seasonRepo:         seasonRepo,
	}
}

// Start begins the aggregate worker process
func (w *AggregateWorker) Start(ctx context.Context) error {
	return w.pollJobs(ctx, w.handleAggregateJob)
}

// handleAggregateJob reaggregates the active season of the job's project
func (w *AggregateWorker) handleAggregateJob(ctx context.Context, job *models.Job) error {
	season, err := w.seasonRepo.GetActiveByProjectID(job.ProjectID)
	if err != nil {
		return err
	}
	if season == nil {
		// Nothing to aggregate without an active season
		return nil
	}

	counted, err := w.aggregationService.ReaggregateSeason(job.ProjectID, season.ID)
	if err != nil {
		return err
	}

	log.Printf("Worker %s reaggregated season %s, %d commits counted", w.WorkerID, season.ID, counted)
	return nil
}
