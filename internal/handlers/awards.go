package handlers

import (
	"net/http"
	"strconv"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type AwardHandler struct {
	awardService *services.AwardService
}

func NewAwardHandler(awardService *services.AwardService) *AwardHandler {
	return &AwardHandler{awardService: awardService}
}

// ListAwards returns the awards of a season, optionally filtered by user
// and award type
func (h *AwardHandler) ListAwards(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	awards, err := h.awardService.ListAwards(
		c.Param("id"),
		c.Query("user_id"),
		models.AwardType(c.Query("award_type")),
		offset, limit,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards})
}

// ListPlaysOfDay returns the plays of the day of a season
func (h *AwardHandler) ListPlaysOfDay(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	plays, err := h.awardService.ListPlaysOfDay(c.Param("id"), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plays": plays})
}
