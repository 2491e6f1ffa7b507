package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/pet-feeder-service/internal/metrics"
	"github.com/PratikDhanave/pet-feeder-service/internal/models"
	"github.com/PratikDhanave/pet-feeder-service/internal/notify"
	"github.com/PratikDhanave/pet-feeder-service/internal/store"
)

// RegisterEventRoutes registers the event recording endpoint.
//
// POST /event
// - feeder_id must reference a provisioned feeder (404 otherwise, nothing stored)
// - served_at is assigned by the server; the persisted value is returned
func RegisterEventRoutes(r gin.IRoutes, st EventStore, pub notify.Publisher) {
	r.POST("/event", func(c *gin.Context) {
		var req models.EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		// Required fields per contract.
		if req.FeederID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "feeder_id required"})
			return
		}
		if req.PortionGrams == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "portion_grams required"})
			return
		}
		if *req.PortionGrams < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "portion_grams must be >= 0"})
			return
		}

		// PostgreSQL keeps microseconds; truncate so the response matches the row.
		servedAt := now().UTC().Truncate(time.Microsecond)

		ev, err := st.InsertEvent(c.Request.Context(), *req.FeederID, *req.PortionGrams, servedAt)
		if errors.Is(err, store.ErrFeederNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feeder_id does not exist"})
			return
		}
		if err != nil {
			serverError(c, err, "db insert failed")
			return
		}
		metrics.EventsRecorded.Inc()

		if err := pub.FeedingRecorded(detached(c), ev); err != nil {
			notifyFailed(c, err)
		}

		c.JSON(http.StatusOK, models.EventResponse{
			Status:    models.StatusOK,
			Timestamp: ev.ServedAt,
		})
	})
}

// RegisterHistoryRoutes registers the recent-events endpoint.
//
// GET /historial?limit=N
// - limit defaults to defaultLimit and must be >= 1
// - returns at most limit events, most recent first
func RegisterHistoryRoutes(r gin.IRoutes, st EventStore, defaultLimit int) {
	r.GET("/historial", func(c *gin.Context) {
		limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))

		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		if limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be >= 1"})
			return
		}

		events, err := st.ListRecentEvents(c.Request.Context(), limit)
		if err != nil {
			serverError(c, err, "db query failed")
			return
		}
		if events == nil {
			events = []models.FeedingEvent{}
		}

		c.JSON(http.StatusOK, events)
	})
}
