package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard returns a ranked page of players for a period
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	query := services.LeaderboardQuery{
		SeasonID:   c.Param("id"),
		PeriodType: models.PeriodType(c.DefaultQuery("period_type", "season")),
		SortBy:     c.DefaultQuery("sort_by", "impact_score"),
		Order:      c.DefaultQuery("order", "desc"),
	}

	if raw := c.Query("period_start"); raw != "" {
		periodStart, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "period_start must be YYYY-MM-DD"})
			return
		}
		query.PeriodStart = &periodStart
	}

	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	page, err := h.leaderboardService.GetLeaderboard(query)
	if err != nil {
		if err == services.ErrSeasonNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}
