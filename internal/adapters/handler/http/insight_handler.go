package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/climatecoach/carbon-engine/internal/adapters/handler/http/middleware"
	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	svc *services.InsightService
}

func NewInsightHandler(svc *services.InsightService) *InsightHandler {
	return &InsightHandler{
		svc: svc,
	}
}

func (h *InsightHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/footprint/:date", h.Footprint)

	insights := router.Group("/insights")
	{
		insights.GET("/summary", h.Summary)
		insights.GET("/patterns", h.Patterns)
		insights.GET("/recommendations", h.Recommendations)
	}
}

func (h *InsightHandler) Footprint(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	footprint, err := h.svc.Footprint(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrFootprintNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no footprint for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, footprint)
}

func (h *InsightHandler) Summary(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *InsightHandler) Patterns(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	profile, err := h.svc.Patterns(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *InsightHandler) Recommendations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	date := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	topN := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		topN = parsed
	}

	recs, err := h.svc.Recommendations(c.Request.Context(), userID, date, topN)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"count":           len(recs),
	})
}
