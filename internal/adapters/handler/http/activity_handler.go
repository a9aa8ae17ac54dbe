package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/climatecoach/carbon-engine/internal/adapters/handler/http/middleware"
	"github.com/climatecoach/carbon-engine/internal/core/domain"
	"github.com/climatecoach/carbon-engine/internal/core/services"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		svc: svc,
	}
}

type logActivityRequest struct {
	Date      string                   `json:"date" binding:"required"`
	Transport domain.TransportActivity `json:"transport"`
	Energy    domain.EnergyActivity    `json:"energy"`
	Food      domain.FoodActivity      `json:"food"`
	Shopping  domain.ShoppingActivity  `json:"shopping"`
	Waste     domain.WasteActivity     `json:"waste"`
	Water     domain.WaterActivity     `json:"water"`
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/activities")
	{
		activities.POST("", h.Log)
		activities.GET("", h.ListRange)
		activities.GET("/sync", h.Sync)
		activities.GET("/:date", h.GetByDate)
		activities.DELETE("/:date", h.Delete)
	}
}

func (h *ActivityHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req logActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use YYYY-MM-DD"})
		return
	}

	input := services.LogActivityInput{
		UserID:    userID,
		Date:      date,
		Transport: req.Transport,
		Energy:    req.Energy,
		Food:      req.Food,
		Shopping:  req.Shopping,
		Waste:     req.Waste,
		Water:     req.Water,
	}

	record, footprint, err := h.svc.Log(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrNegativeQuantity) || errors.Is(err, domain.ErrNegativeTripCount) ||
			errors.Is(err, domain.ErrActivityInvalidDate) || errors.Is(err, domain.ErrActivityInvalidUserID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"activity":  record,
		"footprint": footprint,
	})
}

func (h *ActivityHandler) GetByDate(c *gin.Context) {
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

	record, err := h.svc.GetByDate(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no activity logged for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ActivityHandler) ListRange(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, use YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.Parse(dateLayout, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, use YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	records, err := h.svc.ListRange(c.Request.Context(), userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ActivityHandler) Delete(c *gin.Context) {
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

	if err := h.svc.Delete(c.Request.Context(), userID, date); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no activity logged for this date"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ActivityHandler) Sync(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	lastSyncStr := c.Query("last_sync")
	var lastSync time.Time
	var err error

	if lastSyncStr != "" {
		lastSync, err = time.Parse(time.RFC3339, lastSyncStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_sync format, use RFC3339"})
			return
		}
	}

	deltas, err := h.svc.GetDelta(c.Request.Context(), userID, lastSync)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"changes":   deltas,
		"timestamp": time.Now().UTC(),
	})
}
