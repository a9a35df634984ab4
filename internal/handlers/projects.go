package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	seasonService  *services.SeasonService
	jobService     *services.JobService
}

func NewProjectHandler(
	projectService *services.ProjectService,
	seasonService *services.SeasonService,
	jobService *services.JobService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		seasonService:  seasonService,
		jobService:     jobService,
	}
}

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects returns all projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

type addRepositoryRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Branch string `json:"branch"`
}

// AddRepository registers a repository under a project
func (h *ProjectHandler) AddRepository(c *gin.Context) {
	var req addRepositoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repo, err := h.projectService.AddRepository(c.Param("id"), req.Owner, req.Name, req.Branch)
	if err != nil {
		if err == services.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, repo)
}

// GetRepositories returns the repositories of a project
func (h *ProjectHandler) GetRepositories(c *gin.Context) {
	repos, err := h.projectService.GetRepositories(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"repositories": repos})
}

// TriggerSync enqueues a sync job for a repository
func (h *ProjectHandler) TriggerSync(c *gin.Context) {
	job, err := h.jobService.EnqueueJob(c.Param("id"), models.JobTypeSync, c.Param("repo_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "a sync job is already pending or running"})
		return
	}
	c.JSON(http.StatusAccepted, job)
}

type createSeasonRequest struct {
	Name    string `json:"name" binding:"required"`
	StartAt string `json:"start_at" binding:"required"`
	EndAt   string `json:"end_at" binding:"required"`
}

// CreateSeason creates a draft season for a project
func (h *ProjectHandler) CreateSeason(c *gin.Context) {
	var req createSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startAt, err := time.Parse("2006-01-02", req.StartAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_at must be YYYY-MM-DD"})
		return
	}
	endAt, err := time.Parse("2006-01-02", req.EndAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_at must be YYYY-MM-DD"})
		return
	}

	season, err := h.seasonService.CreateSeason(c.Param("id"), req.Name, startAt, endAt)
	if err != nil {
		if err == services.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, season)
}

// GetSeasons returns the seasons of a project
func (h *ProjectHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.seasonService.GetSeasonsByProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// ActivateSeason makes a season the active season of its project
func (h *ProjectHandler) ActivateSeason(c *gin.Context) {
	season, err := h.seasonService.ActivateSeason(c.Param("season_id"))
	if err != nil {
		if err == services.ErrSeasonNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, season)
}
