package handlers

import (
	"fmt"
	"net/http"

	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportSeason streams the season standings and awards as an Excel file
func (h *ExportHandler) ExportSeason(c *gin.Context) {
	seasonID := c.Param("id")

	buf, err := h.exportService.ExportSeasonLeaderboard(seasonID)
	if err != nil {
		if err == services.ErrSeasonNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("season-%s.xlsx", seasonID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
