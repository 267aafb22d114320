package repositories

import (
	"context"

	"github.com/minutetrack/minute-tracker/internal/domain/entities"
)

// MeetingRepository persists meetings together with their participants and
// detected actions.
type MeetingRepository interface {
	// CreateWithActions persists the meeting, its participants and its
	// actions in one transaction. Returns entities.ErrDuplicateMeeting when
	// a meeting with the same filename already exists.
	CreateWithActions(ctx context.Context, meeting *entities.Meeting, actions []*entities.ActionItem) error

	// GetByFilename loads a meeting with its participants.
	// Returns entities.ErrMeetingNotFound when no row matches.
	GetByFilename(ctx context.Context, filename string) (*entities.Meeting, error)

	// ExistsByFilename reports whether a meeting row exists for the filename.
	ExistsByFilename(ctx context.Context, filename string) (bool, error)

	// List returns meetings ordered by date descending.
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, error)

	// Delete removes the meeting and, by cascade, its participants, actions
	// and action history. Returns entities.ErrMeetingNotFound when absent.
	Delete(ctx context.Context, filename string) error
}
