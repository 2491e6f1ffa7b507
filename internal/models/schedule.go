package models

// ScheduleRequest is the POST /schedule payload. Time is "HH:MM" (24h).
type ScheduleRequest struct {
	FeederID *int64 `json:"feeder_id"`
	Time     string `json:"time"`
}

// ScheduleResponse is returned by POST and DELETE /schedule.
type ScheduleResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Status values expected by the feeder firmware.
const (
	StatusOK        = "ok"
	StatusScheduled = "programado"
	StatusDeleted   = "eliminado"
)
