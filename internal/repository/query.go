package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/mgzon/backend/internal/model"
)

// psql builds queries with $n placeholders for pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const contactTable = "contact_messages"

var contactColumns = []string{
	"id", "name", "email", "subject", "message", "status",
	"ip_address", "user_agent", "notes", "activities",
	"created_at", "updated_at",
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text
// so "50%" searches for a literal percent sign.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// messageFilter translates the optional status and free-text filters into
// a WHERE clause. Search text matches case-insensitively as a substring
// of name, email, subject or message; a status filter is ANDed on top.
func messageFilter(opts model.MessageListOptions) sq.And {
	var filter sq.And
	if opts.Status != nil {
		filter = append(filter, sq.Eq{"status": *opts.Status})
	}
	if text := strings.TrimSpace(opts.SearchText); text != "" {
		pattern := "%" + escapeLike(text) + "%"
		filter = append(filter, sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"email": pattern},
			sq.ILike{"subject": pattern},
			sq.ILike{"message": pattern},
		})
	}
	return filter
}

// planMessageList builds the paged listing query. The extra total_count
// column is a window count over the filtered set, so the page items and
// the total always come from the same snapshot. Sort parameters have
// already been checked against the allow-list by Normalize; raw request
// input never reaches the builder.
func planMessageList(opts model.MessageListOptions) (sq.SelectBuilder, error) {
	if err := opts.Normalize(); err != nil {
		return sq.SelectBuilder{}, err
	}

	columns := append(append([]string{}, contactColumns...), "COUNT(*) OVER () AS total_count")
	q := psql.Select(columns...).
		From(contactTable).
		OrderBy(opts.SortField + " " + strings.ToUpper(opts.SortDir)).
		Offset(uint64(opts.Skip)).
		Limit(uint64(opts.Limit))

	if filter := messageFilter(opts); len(filter) > 0 {
		q = q.Where(filter)
	}
	return q, nil
}

// planMessageCount builds the standalone COUNT query used when a page
// beyond the last row comes back empty and the window count is unavailable.
func planMessageCount(opts model.MessageListOptions) sq.SelectBuilder {
	q := psql.Select("COUNT(*)").From(contactTable)
	if filter := messageFilter(opts); len(filter) > 0 {
		q = q.Where(filter)
	}
	return q
}
