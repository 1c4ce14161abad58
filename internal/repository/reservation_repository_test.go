package repository

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/stayplan/stayplan-server/internal/model"
)

func TestReservationCreateFormatsDates(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    checkIn, _ := time.Parse("2006-01-02", "2025-01-01")
    checkOut, _ := time.Parse("2006-01-02", "2025-01-03")

    mock.ExpectExec("INSERT INTO reservations").
        WithArgs(uint64(7), uint64(3), "Alice", "2025-01-01", "2025-01-03", 2, int64(230000), "paid").
        WillReturnResult(sqlmock.NewResult(11, 1))

    res := &model.Reservation{
        UserID:     7,
        ListingID:  3,
        UserName:   "Alice",
        CheckIn:    checkIn,
        CheckOut:   checkOut,
        Guests:     2,
        TotalPrice: 230000,
        Status:     model.ReservationPaid,
    }
    require.NoError(t, repo.Create(context.Background(), res))
    assert.Equal(t, uint64(11), res.ID)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCancelHappyPath(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(11)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "paid"))
    mock.ExpectExec("UPDATE reservations SET status=").
        WithArgs("canceled", uint64(11)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    require.NoError(t, repo.Cancel(context.Background(), 11, 7, false))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationCancelNotOwner(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(11)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "paid"))

    err := repo.Cancel(context.Background(), 11, 99, false)
    assert.ErrorIs(t, err, ErrForbidden)
}

func TestReservationCancelAdminBypassesOwnership(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(11)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "paid"))
    mock.ExpectExec("UPDATE reservations SET status=").
        WithArgs("canceled", uint64(11)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    require.NoError(t, repo.Cancel(context.Background(), 11, 1, true))
}

func TestReservationCancelAlreadyCanceled(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(11)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(7, "canceled"))

    err := repo.Cancel(context.Background(), 11, 7, false)
    assert.ErrorIs(t, err, ErrConflict)
}

func TestReservationCancelMissingRow(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(404)).
        WillReturnError(sql.ErrNoRows)

    err := repo.Cancel(context.Background(), 404, 7, false)
    assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestReservationGetByIDForUserScopesToOwner(t *testing.T) {
    db, mock := newMockDB(t)
    repo := NewReservationRepo(db)

    mock.ExpectQuery("FROM reservations r").
        WithArgs(uint64(11), uint64(99)).
        WillReturnError(sql.ErrNoRows)

    _, err := repo.GetByIDForUser(context.Background(), 11, 99)
    assert.True(t, errors.Is(err, sql.ErrNoRows))
}
