package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ActivityType categorizes audit-log entries on a contact message.
type ActivityType string

const (
	ActivityReply  ActivityType = "reply"
	ActivityStatus ActivityType = "status"
	ActivityNote   ActivityType = "note"
	ActivityOther  ActivityType = "other"
)

// ParseActivityType converts a raw string into an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	switch ActivityType(s) {
	case ActivityReply, ActivityStatus, ActivityNote, ActivityOther:
		return ActivityType(s), nil
	}
	return "", fmt.Errorf("%w: invalid activity type %q", ErrValidation, s)
}

// Note is a private free-text annotation on a contact message.
// Notes are appended, never edited or removed.
type Note struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityEntry is one audit-log record on a contact message.
type ActivityEntry struct {
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// ContactMessage represents a message submitted via the contact form,
// together with its admin workflow state. Notes and Activities are
// embedded append-only lists ordered by append time.
type ContactMessage struct {
	ID         string          `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Email      string          `json:"email" db:"email"`
	Subject    string          `json:"subject" db:"subject"`
	Message    string          `json:"message" db:"message"`
	Status     Status          `json:"status" db:"status"`
	IPAddress  string          `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent  string          `json:"user_agent,omitempty" db:"user_agent"`
	Notes      []Note          `json:"notes" db:"notes"`
	Activities []ActivityEntry `json:"activities" db:"activities"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// ValidateSubmit checks the fields a visitor must supply.
func (m *ContactMessage) ValidateSubmit() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return fmt.Errorf("%w: invalid email address %q", ErrValidation, m.Email)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrValidation)
	}
	return nil
}

// Sort directions accepted by MessageListOptions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// messageSortFields is the closed set of columns an admin may sort by.
// Free-form sort input never reaches the query builder.
var messageSortFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"name":       {},
	"email":      {},
	"subject":    {},
	"status":     {},
}

// MessageListOptions carries filter, sort and pagination parameters for
// listing contact messages. SearchText matches case-insensitively against
// name, email, subject and message.
type MessageListOptions struct {
	Status     *Status
	SearchText string
	SortField  string
	SortDir    string
	Skip       int
	Limit      int
}

// Normalize fills defaults and validates the sort parameters.
// The default order is newest first.
func (o *MessageListOptions) Normalize() error {
	if o.SortField == "" {
		o.SortField = "created_at"
	}
	if _, ok := messageSortFields[o.SortField]; !ok {
		return fmt.Errorf("%w: invalid sort field %q", ErrValidation, o.SortField)
	}
	if o.SortDir == "" {
		o.SortDir = SortDesc
	}
	if o.SortDir != SortAsc && o.SortDir != SortDesc {
		return fmt.Errorf("%w: invalid sort direction %q", ErrValidation, o.SortDir)
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Limit <= 0 {
		o.Limit = 20
	}
	return nil
}
