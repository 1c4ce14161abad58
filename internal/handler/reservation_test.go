package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/stayplan/stayplan-server/internal/middleware"
    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/repository"
)

var listingCols = []string{"id", "title", "location", "price_per_night", "description", "thumbnail", "type", "owner_id", "created_at", "updated_at"}

// withIdentity injects a request identity the way JWTAuth would.
func withIdentity(ident middleware.Identity) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            c.Set("identity", ident)
            return next(c)
        }
    }
}

func newReservationEcho(t *testing.T, ident middleware.Identity) (*echo.Echo, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })

    h := NewReservationHandler(repository.NewListingRepo(db), repository.NewReservationRepo(db))
    e := echo.New()
    g := e.Group("", withIdentity(ident))
    g.POST("/api/reservations", h.Create)
    g.GET("/api/my-reservations", h.ListMine)
    g.DELETE("/api/reservations/:id", h.Cancel)
    return e, mock
}

func listingRow(nightly int64) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows(listingCols).
        AddRow(3, "Seaside Cabin", "Jeju", nightly, "quiet", "/uploads/cabin.jpg", "domestic", 9, now, now)
}

func TestCreateReservationComputesTotalServerSide(t *testing.T) {
    e, mock := newReservationEcho(t, middleware.Identity{ID: 7, LoginID: "alice", Name: "Alice", Role: model.RoleUser})

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id=").
        WithArgs(uint64(3)).
        WillReturnRows(listingRow(100000))
    mock.ExpectExec("INSERT INTO reservations").
        WithArgs(uint64(7), uint64(3), "Alice", "2025-01-01", "2025-01-03", 2, int64(230000), "paid").
        WillReturnResult(sqlmock.NewResult(11, 1))

    // The client sends a bogus total; the server must store 230000.
    body := `{"user_name":"Alice","listing_id":3,"check_in":"2025-01-01","check_out":"2025-01-03","guests":2,"total_price":1}`
    rec := postJSON(e, "/api/reservations", body)
    require.Equal(t, http.StatusCreated, rec.Code)

    var resp struct {
        OK         bool   `json:"ok"`
        ID         uint64 `json:"id"`
        TotalPrice int64  `json:"total_price"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.True(t, resp.OK)
    assert.Equal(t, uint64(11), resp.ID)
    assert.Equal(t, int64(230000), resp.TotalPrice)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservationRejectsInvertedDates(t *testing.T) {
    e, mock := newReservationEcho(t, middleware.Identity{ID: 7, LoginID: "alice", Name: "Alice", Role: model.RoleUser})

    // The listing loads fine; the stay itself is invalid.
    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id=").
        WithArgs(uint64(3)).
        WillReturnRows(listingRow(100000))

    body := `{"user_name":"Alice","listing_id":3,"check_in":"2025-01-03","check_out":"2025-01-03","guests":2,"total_price":1}`
    rec := postJSON(e, "/api/reservations", body)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "check_out must be after check_in")
}

func TestCreateReservationMissingFields(t *testing.T) {
    e, _ := newReservationEcho(t, middleware.Identity{ID: 7, LoginID: "alice", Name: "Alice", Role: model.RoleUser})

    body := `{"listing_id":3,"check_in":"2025-01-01"}`
    rec := postJSON(e, "/api/reservations", body)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReservationUnknownListing(t *testing.T) {
    e, mock := newReservationEcho(t, middleware.Identity{ID: 7, LoginID: "alice", Name: "Alice", Role: model.RoleUser})

    mock.ExpectQuery("SELECT (.+) FROM listings WHERE id=").
        WithArgs(uint64(99)).
        WillReturnRows(sqlmock.NewRows(listingCols))

    body := `{"user_name":"Alice","listing_id":99,"check_in":"2025-01-01","check_out":"2025-01-03","total_price":1}`
    rec := postJSON(e, "/api/reservations", body)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelReservationNotOwned(t *testing.T) {
    e, mock := newReservationEcho(t, middleware.Identity{ID: 7, LoginID: "alice", Name: "Alice", Role: model.RoleUser})

    // Reservation 5 belongs to user 42, caller is user 7 and not admin.
    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(42, "paid"))

    req := httptest.NewRequest(http.MethodDelete, "/api/reservations/5", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCancelReservationAsAdmin(t *testing.T) {
    e, mock := newReservationEcho(t, middleware.Identity{ID: 1, LoginID: "root", Name: "Root", Role: model.RoleAdmin})

    mock.ExpectQuery("SELECT user_id, status FROM reservations WHERE id=").
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"user_id", "status"}).AddRow(42, "paid"))
    mock.ExpectExec("UPDATE reservations SET status=").
        WithArgs("canceled", uint64(5)).
        WillReturnResult(sqlmock.NewResult(0, 1))

    req := httptest.NewRequest(http.MethodDelete, "/api/reservations/5", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusNoContent, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMineJoinsListingFields(t *testing.T) {
    e, mock := newReservationEcho(t, middleware.Identity{ID: 7, LoginID: "alice", Name: "Alice", Role: model.RoleUser})

    cols := []string{"id", "listing_id", "title", "thumbnail", "location",
        "user_name", "check_in", "check_out", "guests", "total_price", "status", "created_at"}
    checkIn, _ := time.Parse("2006-01-02", "2025-01-01")
    checkOut, _ := time.Parse("2006-01-02", "2025-01-03")
    mock.ExpectQuery("FROM reservations r").
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows(cols).
            AddRow(11, 3, "Seaside Cabin", "/uploads/cabin.jpg", "Jeju",
                "Alice", checkIn, checkOut, 2, 230000, "paid", time.Now()))

    req := httptest.NewRequest(http.MethodGet, "/api/my-reservations", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"listing_title":"Seaside Cabin"`)
    assert.Contains(t, rec.Body.String(), `"listing_thumbnail":"/uploads/cabin.jpg"`)
    assert.Contains(t, rec.Body.String(), `"check_in":"2025-01-01"`)
}
