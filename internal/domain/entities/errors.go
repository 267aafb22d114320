package entities

import "errors"

// Domain errors
var (
	// Ingestion / store errors
	ErrDuplicateMeeting = errors.New("meeting already exists for this filename")
	ErrMeetingNotFound  = errors.New("meeting not found")

	// Action lifecycle errors
	ErrActionNotFound    = errors.New("action not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
