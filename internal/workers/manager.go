package workers

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/alimgiray/gitcourt/pkg/config"
)

// WorkerManager manages multiple workers of different types
type WorkerManager struct {
	workers            []Worker
	jobService         *services.JobService
	syncService        *services.GitHubSyncService
	aggregationService *services.AggregationService
	awardService       *services.AwardService
	seasonRepo         *repositories.SeasonRepository
	wg                 sync.WaitGroup
	ctx                context.Context
	cancel             context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(
	jobService *services.JobService,
	syncService *services.GitHubSyncService,
	aggregationService *services.AggregationService,
	awardService *services.AwardService,
	seasonRepo *repositories.SeasonRepository,
) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:            make([]Worker, 0),
		jobService:         jobService,
		syncService:        syncService,
		aggregationService: aggregationService,
		awardService:       awardService,
		seasonRepo:         seasonRepo,
		ctx:                ctx,
		cancel:             cancel,
	}
}

// StartAll starts all workers based on the configured counts
func (wm *WorkerManager) StartAll(cfg *config.Config) error {
	log.Printf("Starting workers - Sync: %d, Aggregate: %d, Award: %d",
		cfg.Workers.SyncWorkers, cfg.Workers.AggregateWorkers, cfg.Workers.AwardWorkers)

	for i := 0; i < cfg.Workers.SyncWorkers; i++ {
		worker := NewSyncWorker(fmt.Sprintf("sync-%d", i+1), wm.jobService, wm.syncService)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	for i := 0; i < cfg.Workers.AggregateWorkers; i++ {
		worker := NewAggregateWorker(fmt.Sprintf("aggregate-%d", i+1), wm.jobService, wm.aggregationService, wm.seasonRepo)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	for i := 0; i < cfg.Workers.AwardWorkers; i++ {
		worker := NewAwardWorker(fmt.Sprintf("award-%d", i+1), wm.jobService, wm.awardService, wm.seasonRepo)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	log.Printf("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	log.Println("Stopping all workers...")

	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			log.Printf("Error stopping worker %s: %v", worker.GetWorkerID(), err)
		}
	}

	wm.wg.Wait()

	log.Println("All workers stopped")
	return nil
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			log.Printf("Worker %s stopped with error: %v", worker.GetWorkerID(), err)
		}
	}()
}
