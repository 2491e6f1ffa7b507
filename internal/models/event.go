package models

import "time"

// FeedingEvent is one portion dispensed by a feeder. Rows are never updated.
type FeedingEvent struct {
	ID           int64     `json:"id"`
	FeederID     int64     `json:"feeder_id"`
	ServedAt     time.Time `json:"served_at"`
	PortionGrams int       `json:"portion_grams"`
}

// EventRequest is the POST /event payload.
// Pointers distinguish a missing field from an explicit zero.
type EventRequest struct {
	FeederID     *int64 `json:"feeder_id"`
	PortionGrams *int   `json:"portion_grams"`
}

// EventResponse is returned by POST /event.
// Timestamp is the served_at value that was persisted.
type EventResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
