package repository

import (
	"context"

	"github.com/mgzon/backend/internal/model"
)

// ContactRepository defines the persistence interface for contact messages.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	// Save inserts a new message and populates its ID and timestamps.
	Save(ctx context.Context, msg *model.ContactMessage) error

	// GetByID returns the message or ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.ContactMessage, error)

	// List returns one page of messages plus the total count under the
	// same filter. Both come from the same statement, so they never
	// drift against each other.
	List(ctx context.Context, opts model.MessageListOptions) ([]*model.ContactMessage, int, error)

	// UpdateStatus sets the status of a single message and appends the
	// audit entry in the same statement. On failure neither the status
	// nor the activity log changes.
	UpdateStatus(ctx context.Context, id string, status model.Status, entry model.ActivityEntry) error

	// BulkUpdateStatus sets the same status on every given id in one
	// statement.
	BulkUpdateStatus(ctx context.Context, ids []string, status model.Status) error

	// AppendNote appends one note and its audit entry to the message's
	// embedded arrays in a single statement. No read-modify-write:
	// concurrent appends both survive, and a failed call leaves both
	// arrays untouched.
	AppendNote(ctx context.Context, id string, note model.Note, entry model.ActivityEntry) error

	// AppendActivity atomically appends one audit entry to the message's
	// embedded activities array.
	AppendActivity(ctx context.Context, id string, entry model.ActivityEntry) error

	// Delete removes the message or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
