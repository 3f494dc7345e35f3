package model

import "fmt"

// Status is the workflow state of a contact message.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusSpam       Status = "spam"
)

// ParseStatus converts a raw string into a Status, rejecting anything
// outside the four known values.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusResolved, StatusSpam:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: invalid status %q", ErrValidation, s)
}

// ToggleResolved returns the status after the admin's resolve toggle:
// resolved reopens to new; every other status collapses to resolved.
// in_progress and spam never come back from resolved via the toggle,
// only through an explicit status change.
func (s Status) ToggleResolved() Status {
	if s == StatusResolved {
		return StatusNew
	}
	return StatusResolved
}

func (s Status) String() string { return string(s) }
