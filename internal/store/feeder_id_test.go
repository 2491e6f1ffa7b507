package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/PratikDhanave/pet-feeder-service/internal/feedtime"
)

func TestFeederIDInRange(t *testing.T) {
	tests := []struct {
		id   int64
		want bool
	}{
		{1, true},
		{0, true},
		{math.MaxInt32, true},
		{math.MinInt32, true},
		{math.MaxInt32 + 1, false},
		{3_000_000_000, false},
		{math.MinInt32 - 1, false},
		{math.MaxInt64, false},
	}
	for _, tt := range tests {
		if got := feederIDInRange(tt.id); got != tt.want {
			t.Errorf("feederIDInRange(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

// Ids wider than the INT column are answered without a round trip, so a
// store with no pool is enough here.
func TestOutOfRangeFeederID_NoQuery(t *testing.T) {
	st := &PostgresStore{}
	ctx := context.Background()
	const big = int64(3_000_000_000)
	at, _ := feedtime.Parse("08:00")

	if _, err := st.InsertEvent(ctx, big, 10, time.Now()); !errors.Is(err, ErrFeederNotFound) {
		t.Errorf("InsertEvent() error = %v, want ErrFeederNotFound", err)
	}
	if _, err := st.InsertSchedule(ctx, big, at); !errors.Is(err, ErrFeederNotFound) {
		t.Errorf("InsertSchedule() error = %v, want ErrFeederNotFound", err)
	}
	times, err := st.ListSchedules(ctx, big)
	if err != nil || times == nil || len(times) != 0 {
		t.Errorf("ListSchedules() = %v, %v, want empty non-nil", times, err)
	}
	if err := st.DeleteSchedule(ctx, big, at); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("DeleteSchedule() error = %v, want ErrScheduleNotFound", err)
	}
}
