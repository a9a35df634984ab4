package handlers

import (
	"net/http"
	"time"

	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	userService *services.UserService
}

func NewPlayerHandler(userService *services.UserService) *PlayerHandler {
	return &PlayerHandler{userService: userService}
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// CreateUser registers a new league participant
func (h *PlayerHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// RetireUser marks a user as retired
func (h *PlayerHandler) RetireUser(c *gin.Context) {
	if err := h.userService.RetireUser(c.Param("id")); err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "retired"})
}

type addIdentityRequest struct {
	GitEmail string `json:"git_email" binding:"required"`
}

// AddGitIdentity maps a git email to a user
func (h *PlayerHandler) AddGitIdentity(c *gin.Context) {
	var req addIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.userService.AddGitIdentity(c.Param("id"), req.GitEmail)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, identity)
}

// GetGitIdentities lists the git emails mapped to a user
func (h *PlayerHandler) GetGitIdentities(c *gin.Context) {
	identities, err := h.userService.GetGitIdentities(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, identities)
}

type declareAbsenceRequest struct {
	SeasonID  string `json:"season_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// DeclareAbsence records an absence range for a user
func (h *PlayerHandler) DeclareAbsence(c *gin.Context) {
	var req declareAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return
	}

	absence, err := h.userService.DeclareAbsence(c.Param("id"), req.SeasonID, startDate, endDate, req.Reason)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, absence)
}

// GetPlayerSeasonStats returns a user's aggregated stats for a season
func (h *PlayerHandler) GetPlayerSeasonStats(c *gin.Context) {
	stats, err := h.userService.GetPlayerSeasonStats(c.Param("id"), c.Param("season_id"))
	if err != nil {
		switch err {
		case services.ErrUserNotFound, services.ErrSeasonNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetPlayerCareerStats returns a user's all-time totals across seasons
func (h *PlayerHandler) GetPlayerCareerStats(c *gin.Context) {
	stats, err := h.userService.GetPlayerCareerStats(c.Param("id"))
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
