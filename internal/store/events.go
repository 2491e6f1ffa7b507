package store

import (
	"context"
	"fmt"
	"time"

	"github.com/PratikDhanave/pet-feeder-service/internal/models"
)

// InsertEvent records that feederID dispensed portionGrams at servedAt.
//
// The feeder check and the insert share one transaction; an unknown feeder
// returns ErrFeederNotFound and inserts nothing. The returned event carries
// the served_at value as persisted (microsecond precision, UTC).
func (p *PostgresStore) InsertEvent(
	ctx context.Context,
	feederID int64,
	portionGrams int,
	servedAt time.Time,
) (models.FeedingEvent, error) {
	if !feederIDInRange(feederID) {
		return models.FeedingEvent{}, ErrFeederNotFound
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return models.FeedingEvent{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM feeders WHERE id = $1)`, feederID,
	).Scan(&exists); err != nil {
		return models.FeedingEvent{}, fmt.Errorf("check feeder: %w", err)
	}
	if !exists {
		return models.FeedingEvent{}, ErrFeederNotFound
	}

	ev := models.FeedingEvent{FeederID: feederID, PortionGrams: portionGrams}
	err = tx.QueryRow(ctx, `
		INSERT INTO feeding_events (feeder_id, served_at, portion_grams)
		VALUES ($1, $2, $3)
		RETURNING id, served_at
	`, feederID, servedAt, portionGrams).Scan(&ev.ID, &ev.ServedAt)
	if err != nil {
		// The feeder may have been removed between the check and the insert.
		if isForeignKeyViolation(err) {
			return models.FeedingEvent{}, ErrFeederNotFound
		}
		return models.FeedingEvent{}, fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.FeedingEvent{}, fmt.Errorf("commit: %w", err)
	}

	ev.ServedAt = ev.ServedAt.UTC()
	return ev, nil
}

// ListRecentEvents returns at most limit events, most recent first.
// Ties on served_at are broken by id so the order is stable.
func (p *PostgresStore) ListRecentEvents(ctx context.Context, limit int) ([]models.FeedingEvent, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be >= 1, got %d", limit)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, feeder_id, served_at, portion_grams
		FROM feeding_events
		ORDER BY served_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]models.FeedingEvent, 0, min(limit, 64))
	for rows.Next() {
		var ev models.FeedingEvent
		if err := rows.Scan(&ev.ID, &ev.FeederID, &ev.ServedAt, &ev.PortionGrams); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.ServedAt = ev.ServedAt.UTC()
		events = append(events, ev)
	}
	return events, rows.Err()
}
