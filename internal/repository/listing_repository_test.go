package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/stayplan/stayplan-server/internal/model"
)

func listingMockRows() *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "title", "location", "price_per_night", "description", "thumbnail", "type", "owner_id", "created_at", "updated_at"}).
        AddRow(3, "Seaside Cabin", "Jeju", 100000, "quiet", "/uploads/cabin.jpg", "domestic", 9, now, now)
}

func TestListingGetByIDNotFound(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id=").
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))

    _, err := repo.GetByID(context.Background(), 99)
    assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingGetByID(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id=").
        WithArgs(uint64(3)).
        WillReturnRows(listingMockRows())

    l, err := repo.GetByID(context.Background(), 3)
    require.NoError(t, err)
    assert.Equal(t, "Seaside Cabin", l.Title)
    assert.Equal(t, int64(100000), l.PricePerNight)
    assert.Equal(t, model.ListingDomestic, l.Type)
}

func TestListingListByTypeFiltersCatalogue(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE type=").
        WithArgs("abroad").
        WillReturnRows(sqlmock.NewRows([]string{"id", "title", "location", "price_per_night", "description", "thumbnail", "type", "owner_id", "created_at", "updated_at"}))

    items, err := repo.ListByType(context.Background(), model.ListingAbroad)
    require.NoError(t, err)
    assert.Empty(t, items)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSearchMatchesTitleOrLocation(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings WHERE`).
        WithArgs("%cabin%", "%cabin%").
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
    mock.ExpectQuery("SELECT (.+) FROM listings WHERE").
        WithArgs("%cabin%", "%cabin%", 10, 0).
        WillReturnRows(listingMockRows())

    items, total, err := repo.Search(context.Background(), "  Cabin ", 1, 10)
    require.NoError(t, err)
    assert.Equal(t, int64(1), total)
    require.Len(t, items, 1)
    assert.Equal(t, "Seaside Cabin", items[0].Title)
}

func TestListingUpdateOwnedRejectsOtherSeller(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery("SELECT owner_id FROM listings WHERE id=").
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(9))

    l := &model.Listing{ID: 3, Title: "Hijacked"}
    err := repo.UpdateOwned(context.Background(), l, 5, false)
    assert.ErrorIs(t, err, ErrForbidden)
}

func TestListingDeleteOwnedMissingRow(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery("SELECT owner_id FROM listings WHERE id=").
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))

    err := repo.DeleteOwned(context.Background(), 99, 5, false)
    assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestListingDeleteOwnedAdminSkipsOwnerCheck(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewListingRepo(db)

    mock.ExpectQuery("SELECT owner_id FROM listings WHERE id=").
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(9))
    mock.ExpectExec("DELETE FROM listings WHERE id=").
        WithArgs(uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    require.NoError(t, repo.DeleteOwned(context.Background(), 3, 1, true))
    assert.NoError(t, mock.ExpectationsWereMet())
}
