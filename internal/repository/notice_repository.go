package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stayplan/stayplan-server/internal/model"
)

// NoticeRepo provides access to admin-authored announcements. Public
// readers only ever see rows with visible=1; the admin surface sees
// everything.
type NoticeRepo struct{ db *sql.DB }

func NewNoticeRepo(db *sql.DB) *NoticeRepo { return &NoticeRepo{db: db} }

const noticeColumns = "id,title,content,visible,created_at,updated_at"

func scanNotice(scan func(dest ...any) error) (model.Notice, error) {
	var n model.Notice
	err := scan(&n.ID, &n.Title, &n.Content, &n.Visible, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListVisible returns all visible notices, newest first.
func (r *NoticeRepo) ListVisible(ctx context.Context) ([]model.Notice, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noticeColumns+" FROM notices WHERE visible=1 ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotices(rows)
}

// GetVisibleByID returns a single visible notice. Hidden or missing
// notices both map to ErrNoticeNotFound so the public surface cannot
// probe for hidden announcements.
func (r *NoticeRepo) GetVisibleByID(ctx context.Context, id uint64) (model.Notice, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+noticeColumns+" FROM notices WHERE id=? AND visible=1 LIMIT 1", id)
	n, err := scanNotice(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return n, ErrNoticeNotFound
	}
	return n, err
}

// List returns a page of all notices (visible or not) with the total
// row count. Used by the admin surface.
func (r *NoticeRepo) List(ctx context.Context, page, limit int) ([]model.Notice, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notices").Scan(&total); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noticeColumns+" FROM notices ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectNotices(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a notice and populates the generated ID.
func (r *NoticeRepo) Create(ctx context.Context, n *model.Notice) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO notices (title, content, visible) VALUES (?,?,?)",
		n.Title, n.Content, n.Visible)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// Update rewrites a notice. sql.ErrNoRows is returned when the row
// does not exist.
func (r *NoticeRepo) Update(ctx context.Context, n *model.Notice) error {
	var exists uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM notices WHERE id=?", n.ID).Scan(&exists)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE notices SET title=?, content=?, visible=? WHERE id=?",
		n.Title, n.Content, n.Visible, n.ID)
	return err
}

// Delete removes a notice row.
func (r *NoticeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notices WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func collectNotices(rows *sql.Rows) ([]model.Notice, error) {
	items := make([]model.Notice, 0)
	for rows.Next() {
		n, err := scanNotice(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
