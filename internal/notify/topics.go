package notify

import "fmt"

// Topics builds per-feeder topic names under Prefix.
type Topics struct {
	Prefix string
}

func (t Topics) prefix() string {
	if t.Prefix == "" {
		return "feeder"
	}
	return t.Prefix
}

// Events returns the topic for recorded feeding events, e.g. feeder/3/events.
func (t Topics) Events(feederID int64) string {
	return fmt.Sprintf("%s/%d/events", t.prefix(), feederID)
}

// Schedule returns the topic for schedule changes, e.g. feeder/3/schedule.
func (t Topics) Schedule(feederID int64) string {
	return fmt.Sprintf("%s/%d/schedule", t.prefix(), feederID)
}
