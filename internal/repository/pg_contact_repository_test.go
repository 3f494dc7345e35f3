package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mgzon/backend/internal/model"
	pgxmock "github.com/pashagolub/pgxmock/v2"
)

func newMockRepo(t *testing.T) (*PgContactRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool failed: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPgContactRepository(mock), mock
}

func expectationsMet(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPgContactRepository_Save(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO contact_messages`).
		WithArgs(pgxmock.AnyArg(), "Ann", "a@x.com", "hi", "hello", "new", "203.0.113.9", "curl/8").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	msg := &model.ContactMessage{
		Name:      "Ann",
		Email:     "a@x.com",
		Subject:   "hi",
		Message:   "hello",
		Status:    model.StatusNew,
		IPAddress: "203.0.113.9",
		UserAgent: "curl/8",
	}
	if err := repo.Save(context.Background(), msg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if msg.ID == "" {
		t.Error("expected Save to generate an id")
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		t.Errorf("generated id %q is not a uuid", msg.ID)
	}
	if !msg.CreatedAt.Equal(now) || !msg.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not populated from RETURNING: %v %v", msg.CreatedAt, msg.UpdatedAt)
	}
	expectationsMet(t, mock)
}

func TestPgContactRepository_UpdateStatus(t *testing.T) {
	id := uuid.NewString()

	t.Run("status and audit entry in one statement", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE contact_messages\s+SET status = \$1, activities = activities \|\| \$2::jsonb, updated_at = NOW\(\)`).
			WithArgs("resolved", pgxmock.AnyArg(), id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		entry := model.ActivityEntry{
			Type:      model.ActivityStatus,
			Content:   "Status changed to resolved",
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.UpdateStatus(context.Background(), id, model.StatusResolved, entry); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE contact_messages\s+SET status`).
			WithArgs("spam", pgxmock.AnyArg(), id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(context.Background(), id, model.StatusSpam, model.ActivityEntry{})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		expectationsMet(t, mock)
	})
}

func TestPgContactRepository_AppendNote(t *testing.T) {
	id := uuid.NewString()

	t.Run("note and audit entry via jsonb concat, not read-modify-write", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE contact_messages\s+SET notes = notes \|\| \$2::jsonb, activities = activities \|\| \$3::jsonb`).
			WithArgs(id, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		note := model.Note{Content: "call back tomorrow", CreatedAt: time.Now().UTC()}
		entry := model.ActivityEntry{
			Type:      model.ActivityNote,
			Content:   "Added note: call back tomorrow...",
			CreatedAt: note.CreatedAt,
		}
		if err := repo.AppendNote(context.Background(), id, note, entry); err != nil {
			t.Fatalf("AppendNote failed: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`UPDATE contact_messages\s+SET notes`).
			WithArgs(id, pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.AppendNote(context.Background(), id, model.Note{Content: "x"}, model.ActivityEntry{})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		expectationsMet(t, mock)
	})
}

func TestPgContactRepository_AppendActivity(t *testing.T) {
	id := uuid.NewString()
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE contact_messages SET activities = activities \|\| \$2::jsonb`).
		WithArgs(id, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	entry := model.ActivityEntry{
		Type:      model.ActivityStatus,
		Content:   "Status changed to resolved",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.AppendActivity(context.Background(), id, entry); err != nil {
		t.Fatalf("AppendActivity failed: %v", err)
	}
	expectationsMet(t, mock)
}

func TestPgContactRepository_BulkUpdateStatus(t *testing.T) {
	t.Run("single statement for all ids", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

		mock.ExpectExec(`UPDATE contact_messages SET status = \$1, updated_at = NOW\(\) WHERE id IN`).
			WithArgs("resolved", ids[0], ids[1], ids[2]).
			WillReturnResult(pgxmock.NewResult("UPDATE", 3))

		if err := repo.BulkUpdateStatus(context.Background(), ids, model.StatusResolved); err != nil {
			t.Fatalf("BulkUpdateStatus failed: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		if err := repo.BulkUpdateStatus(context.Background(), nil, model.StatusSpam); err != nil {
			t.Fatalf("expected no-op, got %v", err)
		}
		expectationsMet(t, mock)
	})
}

func TestPgContactRepository_Delete(t *testing.T) {
	id := uuid.NewString()

	t.Run("deletes", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`DELETE FROM contact_messages WHERE id = \$1`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		if err := repo.Delete(context.Background(), id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		expectationsMet(t, mock)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(`DELETE FROM contact_messages`).
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		if err := repo.Delete(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		expectationsMet(t, mock)
	})
}
