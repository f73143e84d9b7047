package posts

import "errors"

var (
	// ErrEmptyContent is returned when a post or edit has no content
	ErrEmptyContent = errors.New("post content must not be empty")

	// ErrInvalidSchedule is returned when scheduled_at is not strictly in
	// the future
	ErrInvalidSchedule = errors.New("scheduled time must be in the future")
)
