package core

import "errors"

var (
	// ErrEmptyInput is returned when the message is empty after trimming whitespace
	ErrEmptyInput = errors.New("message is empty")
	// ErrInvalidFeedback is returned for a feedback value other than yes or no
	ErrInvalidFeedback = errors.New("invalid feedback verdict")
)
