package notify

import "errors"

var (
	// ErrConnectionFailed is returned when the broker cannot be reached at startup.
	ErrConnectionFailed = errors.New("notify: mqtt connection failed")

	// ErrPublishFailed is returned when a message is not acknowledged in time.
	ErrPublishFailed = errors.New("notify: publish failed")
)
