package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PratikDhanave/pet-feeder-service/internal/feedtime"
	"github.com/PratikDhanave/pet-feeder-service/internal/metrics"
	"github.com/PratikDhanave/pet-feeder-service/internal/models"
	"github.com/PratikDhanave/pet-feeder-service/internal/notify"
	"github.com/PratikDhanave/pet-feeder-service/internal/store"
)

const badTimeMsg = "invalid time, use HH:MM (24h)"

// RegisterScheduleRoutes registers the schedule endpoints.
//
// POST   /schedule                       create, idempotent per (feeder_id, time)
// GET    /schedule?feeder_id=N           list times ascending, feeder_id defaults to 1
// DELETE /schedule?feeder_id=N&time=HH:MM  delete, 404 when the slot does not exist
//
// Times are validated before any statement runs.
func RegisterScheduleRoutes(r gin.IRoutes, st ScheduleStore, pub notify.Publisher) {
	r.POST("/schedule", func(c *gin.Context) {
		var req models.ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}
		if req.FeederID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "feeder_id required"})
			return
		}

		at, err := feedtime.Parse(req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": badTimeMsg})
			return
		}

		// A duplicate slot is a successful no-op.
		inserted, err := st.InsertSchedule(c.Request.Context(), *req.FeederID, at)
		if errors.Is(err, store.ErrFeederNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feeder_id does not exist"})
			return
		}
		if err != nil {
			serverError(c, err, "db insert failed")
			return
		}

		if inserted {
			metrics.ScheduleChanges.WithLabelValues("created").Inc()
			if err := pub.ScheduleChanged(detached(c), *req.FeederID, notify.ActionCreated, at); err != nil {
				notifyFailed(c, err)
			}
		} else {
			metrics.ScheduleChanges.WithLabelValues("duplicate").Inc()
		}

		c.JSON(http.StatusOK, models.ScheduleResponse{
			Status: models.StatusScheduled,
			Time:   at.String(),
		})
	})

	r.GET("/schedule", func(c *gin.Context) {
		feederID, err := strconv.ParseInt(c.DefaultQuery("feeder_id", "1"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "feeder_id must be an integer"})
			return
		}

		times, err := st.ListSchedules(c.Request.Context(), feederID)
		if err != nil {
			serverError(c, err, "db query failed")
			return
		}
		if times == nil {
			times = []feedtime.Time{}
		}

		c.JSON(http.StatusOK, times)
	})

	r.DELETE("/schedule", func(c *gin.Context) {
		feederStr, ok := c.GetQuery("feeder_id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "feeder_id required"})
			return
		}
		feederID, err := strconv.ParseInt(feederStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "feeder_id must be an integer"})
			return
		}

		at, err := feedtime.Parse(c.Query("time"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": badTimeMsg})
			return
		}

		err = st.DeleteSchedule(c.Request.Context(), feederID, at)
		if errors.Is(err, store.ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
			return
		}
		if err != nil {
			serverError(c, err, "db delete failed")
			return
		}
		metrics.ScheduleChanges.WithLabelValues("deleted").Inc()

		if err := pub.ScheduleChanged(detached(c), feederID, notify.ActionDeleted, at); err != nil {
			notifyFailed(c, err)
		}

		c.JSON(http.StatusOK, models.ScheduleResponse{
			Status: models.StatusDeleted,
			Time:   at.String(),
		})
	})
}
