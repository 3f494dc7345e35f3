package repository

import (
	"context"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/mgzon/backend/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
// Notes and activities live in jsonb array columns; appends go through a
// targeted `col || $n::jsonb` mutation so concurrent appends never lose
// each other's entries.
type PgContactRepository struct {
	db DB
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(db DB) *PgContactRepository {
	return &PgContactRepository{db: db}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Save inserts a new contact_messages row. The id is generated here when
// absent; timestamps come back from the database RETURNING clause.
func (r *PgContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, status, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message,
		string(msg.Status), msg.IPAddress, msg.UserAgent,
	).Scan(&msg.CreatedAt, &msg.UpdatedAt)
}

// GetByID returns one message with its embedded notes and activities.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.ContactMessage, error) {
	query, args, err := psql.Select(contactColumns...).
		From(contactTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var m model.ContactMessage
	if err := pgxscan.Get(ctx, r.db, &m, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// contactRow carries a page row together with the window count over the
// whole filtered set.
type contactRow struct {
	model.ContactMessage
	TotalCount int `db:"total_count"`
}

// List returns one page of messages and the total count under the same
// filter, both read from a single statement.
func (r *PgContactRepository) List(ctx context.Context, opts model.MessageListOptions) ([]*model.ContactMessage, int, error) {
	q, err := planMessageList(opts)
	if err != nil {
		return nil, 0, err
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var rows []contactRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, 0, err
	}

	if len(rows) == 0 {
		// Page beyond the last row: the window count never materialized,
		// so rerun just the count with the same filter.
		countQuery, countArgs, err := planMessageCount(opts).ToSql()
		if err != nil {
			return nil, 0, err
		}
		var total int
		if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, err
		}
		return []*model.ContactMessage{}, total, nil
	}

	items := make([]*model.ContactMessage, len(rows))
	for i := range rows {
		m := rows[i].ContactMessage
		items[i] = &m
	}
	return items, rows[0].TotalCount, nil
}

// UpdateStatus sets the status and appends the audit entry in one
// statement, so a rejected write changes neither.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id string, status model.Status, entry model.ActivityEntry) error {
	payload, err := json.Marshal([]model.ActivityEntry{entry})
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE contact_messages
		 SET status = $1, activities = activities || $2::jsonb, updated_at = NOW()
		 WHERE id = $3`,
		string(status), string(payload), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdateStatus applies the same status to every id in one statement.
func (r *PgContactRepository) BulkUpdateStatus(ctx context.Context, ids []string, status model.Status) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := psql.Update(contactTable).
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

// AppendNote appends the note and its audit entry to both jsonb arrays in
// a single statement. Either both land or neither does.
func (r *PgContactRepository) AppendNote(ctx context.Context, id string, note model.Note, entry model.ActivityEntry) error {
	notePayload, err := json.Marshal([]model.Note{note})
	if err != nil {
		return err
	}
	activityPayload, err := json.Marshal([]model.ActivityEntry{entry})
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE contact_messages
		 SET notes = notes || $2::jsonb, activities = activities || $3::jsonb, updated_at = NOW()
		 WHERE id = $1`,
		id, string(notePayload), string(activityPayload))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendActivity atomically appends one audit entry to the message's
// activities array.
func (r *PgContactRepository) AppendActivity(ctx context.Context, id string, entry model.ActivityEntry) error {
	payload, err := json.Marshal([]model.ActivityEntry{entry})
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE contact_messages SET activities = activities || $2::jsonb, updated_at = NOW() WHERE id = $1`,
		id, string(payload))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the message row.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
