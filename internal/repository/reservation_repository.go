package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/stayplan/stayplan-server/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. A
// reservation always references the user who booked and the listing
// being booked. All timestamp fields are stored in UTC and the stay
// dates as DATE columns.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const dateLayout = "2006-01-02"

// Create inserts a reservation row and populates the generated ID on
// the provided record. The caller is responsible for having validated
// the stay dates and computed the total before this point.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(user_id, listing_id, user_name, check_in, check_out, guests, total_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.UserID, res.ListingID, res.UserName,
		res.CheckIn.Format(dateLayout), res.CheckOut.Format(dateLayout),
		res.Guests, res.TotalPrice, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// ReservationDetail is a reservation joined with the display fields of
// its listing. It is what the my-reservations screen renders.
type ReservationDetail struct {
	ID              uint64 `json:"id"`
	ListingID       uint64 `json:"listing_id"`
	ListingTitle    string `json:"listing_title"`
	ListingThumb    string `json:"listing_thumbnail"`
	ListingLocation string `json:"listing_location"`
	UserName        string `json:"user_name"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	Guests          int    `json:"guests"`
	TotalPrice      int64  `json:"total_price"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

const detailSelect = `SELECT r.id, r.listing_id, l.title, l.thumbnail, l.location,
		r.user_name, r.check_in, r.check_out, r.guests, r.total_price, r.status, r.created_at
	FROM reservations r
	JOIN listings l ON l.id = r.listing_id`

func scanDetail(scan func(dest ...any) error) (ReservationDetail, error) {
	var d ReservationDetail
	var thumb sql.NullString
	var checkIn, checkOut, createdAt time.Time
	err := scan(&d.ID, &d.ListingID, &d.ListingTitle, &thumb, &d.ListingLocation,
		&d.UserName, &checkIn, &checkOut, &d.Guests, &d.TotalPrice, &d.Status, &createdAt)
	if err != nil {
		return d, err
	}
	d.ListingThumb = thumb.String
	d.CheckIn = checkIn.Format(dateLayout)
	d.CheckOut = checkOut.Format(dateLayout)
	d.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return d, nil
}

// ListByUser returns all reservations made by a user joined with the
// listing title, thumbnail and location, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		detailSelect+" WHERE r.user_id = ? ORDER BY r.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// GetByIDForUser returns a single reservation with listing details,
// restricted to the owning user. sql.ErrNoRows is returned when the
// reservation does not exist for that user.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, reservationID, userID uint64) (ReservationDetail, error) {
	row := r.db.QueryRowContext(ctx,
		detailSelect+" WHERE r.id = ? AND r.user_id = ?", reservationID, userID)
	return scanDetail(row.Scan)
}

// Cancel marks a reservation as canceled. Ownership is enforced unless
// isAdmin is true: sql.ErrNoRows when the reservation does not exist,
// ErrForbidden when it belongs to a different user, ErrConflict when it
// is already canceled.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID, callerID uint64, isAdmin bool) error {
	var ownerID uint64
	var status string
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, status FROM reservations WHERE id=?", reservationID).
		Scan(&ownerID, &status)
	if err != nil {
		return err
	}
	if !isAdmin && ownerID != callerID {
		return ErrForbidden
	}
	if status == model.ReservationCanceled {
		return ErrConflict
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE reservations SET status=? WHERE id=?", model.ReservationCanceled, reservationID)
	return err
}

// AdminRow is a reservation joined with listing and account fields for
// the admin table view.
type AdminRow struct {
	ID           uint64 `json:"id"`
	UserID       uint64 `json:"user_id"`
	UserLoginID  string `json:"user_login_id"`
	UserName     string `json:"user_name"`
	ListingID    uint64 `json:"listing_id"`
	ListingTitle string `json:"listing_title"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Guests       int    `json:"guests"`
	TotalPrice   int64  `json:"total_price"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// ListAll returns a page of reservations across all users joined with
// listing title and account login id, plus the total row count.
func (r *ReservationRepo) ListAll(ctx context.Context, page, limit int) ([]AdminRow, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations").Scan(&total); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	const q = `SELECT r.id, r.user_id, u.login_id, r.user_name,
			r.listing_id, l.title,
			r.check_in, r.check_out, r.guests, r.total_price, r.status, r.created_at
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		JOIN listings l ON l.id = r.listing_id
		ORDER BY r.created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]AdminRow, 0)
	for rows.Next() {
		var a AdminRow
		var checkIn, checkOut, createdAt time.Time
		if err := rows.Scan(&a.ID, &a.UserID, &a.UserLoginID, &a.UserName,
			&a.ListingID, &a.ListingTitle,
			&checkIn, &checkOut, &a.Guests, &a.TotalPrice, &a.Status, &createdAt); err != nil {
			return nil, 0, err
		}
		a.CheckIn = checkIn.Format(dateLayout)
		a.CheckOut = checkOut.Format(dateLayout)
		a.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Delete removes a reservation row entirely. Only the admin surface
// uses this; the customer path cancels instead.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
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
