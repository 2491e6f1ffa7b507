package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/PratikDhanave/pet-feeder-service/internal/feedtime"
)

func pgTime(t feedtime.Time) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

// InsertSchedule adds the (feederID, at) slot and returns inserted=false when
// it already existed.
//
// Duplicate detection is enforced by the UNIQUE (feeder_id, feed_time)
// constraint, so concurrent creates of the same slot leave exactly one row.
// An unknown feeder fails the foreign key and returns ErrFeederNotFound.
func (p *PostgresStore) InsertSchedule(ctx context.Context, feederID int64, at feedtime.Time) (bool, error) {
	if !feederIDInRange(feederID) {
		return false, ErrFeederNotFound
	}

	// RETURNING 1 only when inserted; duplicates return no rows.
	var one int
	err := p.pool.QueryRow(ctx, `
		INSERT INTO feed_schedules (feeder_id, feed_time)
		VALUES ($1, $2)
		ON CONFLICT (feeder_id, feed_time) DO NOTHING
		RETURNING 1
	`, feederID, pgTime(at)).Scan(&one)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	case isForeignKeyViolation(err):
		return false, ErrFeederNotFound
	default:
		return false, fmt.Errorf("insert schedule: %w", err)
	}
}

// ListSchedules returns the feeder's daily feed times, earliest first.
// A feeder without schedules yields an empty, non-nil slice.
func (p *PostgresStore) ListSchedules(ctx context.Context, feederID int64) ([]feedtime.Time, error) {
	if !feederIDInRange(feederID) {
		return []feedtime.Time{}, nil
	}

	rows, err := p.pool.Query(ctx, `
		SELECT feed_time
		FROM feed_schedules
		WHERE feeder_id = $1
		ORDER BY feed_time
	`, feederID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	times := []feedtime.Time{}
	for rows.Next() {
		var pt pgtype.Time
		if err := rows.Scan(&pt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		t, err := feedtime.FromMicroseconds(pt.Microseconds)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// DeleteSchedule removes the (feederID, at) slot.
// It returns ErrScheduleNotFound when no such slot exists.
func (p *PostgresStore) DeleteSchedule(ctx context.Context, feederID int64, at feedtime.Time) error {
	if !feederIDInRange(feederID) {
		return ErrScheduleNotFound
	}

	tag, err := p.pool.Exec(ctx, `
		DELETE FROM feed_schedules
		WHERE feeder_id = $1 AND feed_time = $2
	`, feederID, pgTime(at))
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
