package handlers

import (
	"net/http"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type ScoringHandler struct {
	scoringService *services.ScoringService
}

func NewScoringHandler(scoringService *services.ScoringService) *ScoringHandler {
	return &ScoringHandler{scoringService: scoringService}
}

// GetCoefficients returns the project's scoring coefficients, creating
// defaults on first access
func (h *ScoringHandler) GetCoefficients(c *gin.Context) {
	coefficients, err := h.scoringService.GetOrCreateCoefficients(c.Param("id"))
	if err != nil {
		if err == services.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, coefficients)
}

// UpdateCoefficients replaces the project's scoring coefficients.
// Existing period rows are not recomputed until a re-aggregation runs.
func (h *ScoringHandler) UpdateCoefficients(c *gin.Context) {
	var coefficients models.ScoreCoefficients
	if err := c.ShouldBindJSON(&coefficients); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coefficients.ProjectID = c.Param("id")

	if err := h.scoringService.UpdateCoefficients(&coefficients); err != nil {
		if err == services.ErrProjectNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, coefficients)
}

// GetCommitMetrics returns the metric breakdown for one stored commit
func (h *ScoringHandler) GetCommitMetrics(c *gin.Context) {
	breakdown, err := h.scoringService.GetCommitMetrics(c.Param("sha"), c.Param("id"))
	if err != nil {
		switch err {
		case services.ErrCommitNotFound, services.ErrProjectNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, breakdown)
}
