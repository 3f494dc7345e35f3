package service

import (
	"context"

	"github.com/mgzon/backend/internal/model"
)

// ContactService defines the business logic for the contact-message
// back-office workflow.
type ContactService interface {
	// Submit validates and stores a new contact message, then notifies
	// the admin address. The msg.ID and timestamps are populated by the
	// implementation; status is forced to "new" regardless of input.
	Submit(ctx context.Context, msg *model.ContactMessage) error

	// Get returns a message or repository.ErrNotFound.
	Get(ctx context.Context, id string) (*model.ContactMessage, error)

	// List returns one page of messages and the total count under the
	// same filter.
	List(ctx context.Context, opts model.MessageListOptions) ([]*model.ContactMessage, int, error)

	// SetStatus changes a message's status and records a status activity.
	SetStatus(ctx context.Context, id, status string) error

	// ToggleResolved flips resolved back to new and collapses every other
	// status to resolved, returning the resulting status.
	ToggleResolved(ctx context.Context, id string) (model.Status, error)

	// BulkSetStatus applies one status to many messages in a single batch.
	BulkSetStatus(ctx context.Context, ids []string, status string) error

	// AddNote appends a private note and a summarizing note activity.
	AddNote(ctx context.Context, id, content string) error

	// AddActivity appends a raw audit-log entry.
	AddActivity(ctx context.Context, id, activityType, content string) error

	// Reply emails the message author and records a reply activity.
	Reply(ctx context.Context, id, body string) error

	// Delete removes a message entirely.
	Delete(ctx context.Context, id string) error
}
