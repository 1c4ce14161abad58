package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/stayplan/stayplan-server/internal/model"
)

// ListingRepo provides read and write access to the listings table.
// Public browse endpoints only read; sellers mutate their own rows and
// admins may mutate any row.
type ListingRepo struct{ db *sql.DB }

func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingColumns = "id,title,location,price_per_night,description,thumbnail,type,owner_id,created_at,updated_at"

func scanListing(scan func(dest ...any) error) (model.Listing, error) {
	var l model.Listing
	var desc, thumb sql.NullString
	err := scan(&l.ID, &l.Title, &l.Location, &l.PricePerNight, &desc, &thumb, &l.Type, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return l, err
	}
	l.Description = desc.String
	l.Thumbnail = thumb.String
	return l, nil
}

// GetByID returns a single listing. ErrListingNotFound is returned
// when no row matches.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.Listing, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE id=? LIMIT 1", id)
	l, err := scanListing(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return l, ErrListingNotFound
	}
	return l, err
}

// ListByType returns all listings in a catalogue (domestic or abroad),
// newest first. An empty listingType returns every listing.
func (r *ListingRepo) ListByType(ctx context.Context, listingType string) ([]model.Listing, error) {
	q := "SELECT " + listingColumns + " FROM listings"
	args := []any{}
	if listingType != "" {
		q += " WHERE type=?"
		args = append(args, listingType)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

// ListByOwner returns every listing owned by a seller, newest first.
func (r *ListingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE owner_id=? ORDER BY created_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

// List returns a page of listings together with the total row count.
// Used by the admin surface.
func (r *ListingRepo) List(ctx context.Context, page, limit int) ([]model.Listing, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&total); err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search finds listings whose title or location matches the query,
// case-insensitively, with pagination. It returns the matching page
// and the total match count.
func (r *ListingRepo) Search(ctx context.Context, query string, page, limit int) ([]model.Listing, int64, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	cond := "LOWER(title) LIKE ? OR LOWER(location) LIKE ?"

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM listings WHERE "+cond, like, like).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+listingColumns+" FROM listings WHERE "+cond+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		like, like, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectListings(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a listing and populates the generated ID.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO listings (title, location, price_per_night, description, thumbnail, type, owner_id) VALUES (?,?,?,?,?,?,?)",
		l.Title, l.Location, l.PricePerNight, l.Description, l.Thumbnail, l.Type, l.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

// UpdateOwned updates a listing after verifying ownership. Admins pass
// isAdmin=true to skip the owner check. Returns ErrListingNotFound when
// the row does not exist and ErrForbidden when it belongs to someone else.
func (r *ListingRepo) UpdateOwned(ctx context.Context, l *model.Listing, callerID uint64, isAdmin bool) error {
	if err := r.checkOwner(ctx, l.ID, callerID, isAdmin); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE listings SET title=?, location=?, price_per_night=?, description=?, thumbnail=?, type=? WHERE id=?",
		l.Title, l.Location, l.PricePerNight, l.Description, l.Thumbnail, l.Type, l.ID)
	return err
}

// DeleteOwned removes a listing after verifying ownership, with the
// same semantics as UpdateOwned.
func (r *ListingRepo) DeleteOwned(ctx context.Context, id, callerID uint64, isAdmin bool) error {
	if err := r.checkOwner(ctx, id, callerID, isAdmin); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id=?", id)
	return err
}

func (r *ListingRepo) checkOwner(ctx context.Context, id, callerID uint64, isAdmin bool) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, "SELECT owner_id FROM listings WHERE id=?", id).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrListingNotFound
	}
	if err != nil {
		return err
	}
	if !isAdmin && ownerID != callerID {
		return ErrForbidden
	}
	return nil
}

func collectListings(rows *sql.Rows) ([]model.Listing, error) {
	items := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
