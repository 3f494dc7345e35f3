package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mgzon/backend/internal/model"
	"github.com/mgzon/backend/internal/repository"
	"github.com/mgzon/backend/pkg/mailer"
)

// noteSummaryRunes caps the note excerpt written into the activity log.
const noteSummaryRunes = 50

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo       repository.ContactRepository
	sender     mailer.Sender
	adminEmail string
}

// NewContactService creates a ContactService backed by the given repository.
// New-message notifications go to adminEmail through sender.
func NewContactService(repo repository.ContactRepository, sender mailer.Sender, adminEmail string) ContactService {
	return &contactServiceImpl{repo: repo, sender: sender, adminEmail: adminEmail}
}

// checkID rejects ids that cannot be a message id. An unparseable id is
// reported as not-found rather than leaking a database syntax error.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	return nil
}

// Submit stores a new contact message and notifies the admin address.
// The message is persisted first; a notification failure is logged but
// does not fail the submission.
func (s *contactServiceImpl) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if err := msg.ValidateSubmit(); err != nil {
		return err
	}

	msg.Status = model.StatusNew
	if err := s.repo.Save(ctx, msg); err != nil {
		return err
	}

	body := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\nMessage: %s\n",
		msg.Name, msg.Email, msg.Subject, msg.Message)
	subject := "New Contact Form Submission: " + msg.Subject
	if err := s.sender.Send(ctx, s.adminEmail, subject, body); err != nil {
		slog.Error("contact notification failed", "error", err, "message_id", msg.ID)
	}
	return nil
}

func (s *contactServiceImpl) Get(ctx context.Context, id string) (*model.ContactMessage, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *contactServiceImpl) List(ctx context.Context, opts model.MessageListOptions) ([]*model.ContactMessage, int, error) {
	return s.repo.List(ctx, opts)
}

// SetStatus changes the status and appends a status activity entry. The
// repository applies both in one write, so a failure changes nothing.
func (s *contactServiceImpl) SetStatus(ctx context.Context, id, status string) error {
	parsed, err := model.ParseStatus(status)
	if err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, parsed, statusActivity(parsed))
}

// statusActivity is the audit entry recorded alongside a status change.
func statusActivity(status model.Status) model.ActivityEntry {
	return model.ActivityEntry{
		Type:      model.ActivityStatus,
		Content:   "Status changed to " + status.String(),
		CreatedAt: time.Now().UTC(),
	}
}

// ToggleResolved applies the resolve-toggle rule to the message's current
// status. The read and write are separate statements; a concurrent status
// change in between is accepted (no optimistic locking on messages).
func (s *contactServiceImpl) ToggleResolved(ctx context.Context, id string) (model.Status, error) {
	msg, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	next := msg.Status.ToggleResolved()
	if err := s.repo.UpdateStatus(ctx, id, next, statusActivity(next)); err != nil {
		return "", err
	}
	return next, nil
}

// BulkSetStatus updates all ids in one batch write. Batch changes are
// logged once here, not fanned out into per-message activity entries.
func (s *contactServiceImpl) BulkSetStatus(ctx context.Context, ids []string, status string) error {
	parsed, err := model.ParseStatus(status)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: ids are required", model.ErrValidation)
	}
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: invalid message id %q", model.ErrValidation, id)
		}
	}

	if err := s.repo.BulkUpdateStatus(ctx, ids, parsed); err != nil {
		return err
	}
	slog.Info("bulk status update", "status", parsed.String(), "count", len(ids))
	return nil
}

// AddNote appends the note and a summarizing activity entry in one
// repository write.
func (s *contactServiceImpl) AddNote(ctx context.Context, id, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: note content is required", model.ErrValidation)
	}
	if err := checkID(id); err != nil {
		return err
	}

	now := time.Now().UTC()
	note := model.Note{Content: content, CreatedAt: now}
	entry := model.ActivityEntry{
		Type:      model.ActivityNote,
		Content:   noteSummary(content),
		CreatedAt: now,
	}
	return s.repo.AppendNote(ctx, id, note, entry)
}

// noteSummary returns the bounded excerpt stored in the activity log.
func noteSummary(content string) string {
	r := []rune(content)
	if len(r) > noteSummaryRunes {
		r = r[:noteSummaryRunes]
	}
	return "Added note: " + string(r) + "..."
}

// AddActivity appends a raw audit entry. This is the primitive the status
// change, note and reply paths all build on.
func (s *contactServiceImpl) AddActivity(ctx context.Context, id, activityType, content string) error {
	parsed, err := model.ParseActivityType(activityType)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: activity content is required", model.ErrValidation)
	}
	if err := checkID(id); err != nil {
		return err
	}
	return s.repo.AppendActivity(ctx, id, model.ActivityEntry{
		Type:      parsed,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

// Reply emails the message author and records a reply activity. The email
// is sent first; if delivery fails no activity is written.
func (s *contactServiceImpl) Reply(ctx context.Context, id, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: reply body is required", model.ErrValidation)
	}
	msg, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, msg.Email, "Re: Your Contact Message", body); err != nil {
		return err
	}
	return s.repo.AppendActivity(ctx, id, model.ActivityEntry{
		Type:      model.ActivityReply,
		Content:   "Reply sent to " + msg.Email,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
