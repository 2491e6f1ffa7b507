package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/PratikDhanave/pet-feeder-service/internal/auth"
	"github.com/PratikDhanave/pet-feeder-service/internal/feedtime"
	"github.com/PratikDhanave/pet-feeder-service/internal/metrics"
	"github.com/PratikDhanave/pet-feeder-service/internal/models"
)

// EventStore persists and lists feeding events.
type EventStore interface {
	InsertEvent(ctx context.Context, feederID int64, portionGrams int, servedAt time.Time) (models.FeedingEvent, error)
	ListRecentEvents(ctx context.Context, limit int) ([]models.FeedingEvent, error)
}

// ScheduleStore persists daily feed times per feeder.
type ScheduleStore interface {
	InsertSchedule(ctx context.Context, feederID int64, at feedtime.Time) (bool, error)
	ListSchedules(ctx context.Context, feederID int64) ([]feedtime.Time, error)
	DeleteSchedule(ctx context.Context, feederID int64, at feedtime.Time) error
}

// now is the server clock; tests replace it.
var now = time.Now

// serverError logs err with the request logger and answers 500 with msg.
func serverError(c *gin.Context, err error, msg string) {
	_ = c.Error(err)
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("client", auth.ClientName(c)).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// notifyFailed records a best-effort notification that did not go out.
func notifyFailed(c *gin.Context, err error) {
	metrics.NotifyFailures.Inc()
	zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("device notification failed")
}

// detached keeps request values but outlives a client that hangs up after the commit.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
