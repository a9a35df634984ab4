package handlers

import (
	"net/http"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type IngestionHandler struct {
	ingestionService   *services.IngestionService
	aggregationService *services.AggregationService
	projectService     *services.ProjectService
	commitRepo         *repositories.CommitRepository
}

func NewIngestionHandler(
	ingestionService *services.IngestionService,
	aggregationService *services.AggregationService,
	projectService *services.ProjectService,
	commitRepo *repositories.CommitRepository,
) *IngestionHandler {
	return &IngestionHandler{
		ingestionService:   ingestionService,
		aggregationService: aggregationService,
		projectService:     projectService,
		commitRepo:         commitRepo,
	}
}

type ingestRequest struct {
	Commits []services.CommitInput `json:"commits" binding:"required"`
}

// IngestCommits accepts a batch of commit records for a repository and
// rolls the inserted ones into the active season's period stats
func (h *IngestionHandler) IngestCommits(c *gin.Context) {
	repositoryID := c.Param("repo_id")

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ingestionService.IngestBatch(repositoryID, req.Commits)
	if err != nil {
		if err == services.ErrRepositoryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repo, err := h.projectService.GetRepository(repositoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var inserted []*models.Commit
	for _, detail := range result.Details {
		if !detail.Inserted {
			continue
		}
		commit, err := h.commitRepo.GetBySHA(detail.SHA)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if commit != nil {
			inserted = append(inserted, commit)
		}
	}

	if len(inserted) > 0 {
		if _, err := h.aggregationService.AggregateCommits(repo.ProjectID, inserted); err != nil && err != services.ErrNoActiveSeason {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetSyncStatus returns the sync read model for a repository
func (h *IngestionHandler) GetSyncStatus(c *gin.Context) {
	status, err := h.ingestionService.GetSyncStatus(c.Param("repo_id"))
	if err != nil {
		if err == services.ErrRepositoryNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}
