package handler

import (
    "context"      // detached context for the fire-and-forget event publish
    "database/sql" // sentinel errors returned from repository
    "errors"       // errors.Is comparisons
    "net/http"     // HTTP status codes
    "time"         // date parsing for the stay range

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/stayplan/stayplan-server/internal/middleware"
    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/pricing"
    "github.com/stayplan/stayplan-server/internal/queue"
    "github.com/stayplan/stayplan-server/internal/repository"
    publisher "github.com/stayplan/stayplan-server/internal/service"
)

const stayDateLayout = "2006-01-02"

// ReservationHandler implements the booking workflow: validate the
// requested stay, recompute the price on the server and persist the
// reservation under the authenticated user. The client sends the
// provisional total it displayed, but the server never trusts it; the
// stored total always comes from the pricing package.
type ReservationHandler struct {
	Listings     *repository.ListingRepo
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(l *repository.ListingRepo, r *repository.ReservationRepo) *ReservationHandler {
	if l == nil || r == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Listings: l, Reservations: r}
}

type createReservationReq struct {
	UserName   string `json:"user_name"`
	ListingID  uint64 `json:"listing_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
}

// Create handles POST /api/reservations. Every required field missing
// is a 400, an unknown listing is a 404, and a stay whose check-out is
// not strictly after its check-in is rejected here regardless of what
// the client validated. On success the reservation is stored as paid
// and a reservation.paid event is published; publish failures are
// logged inside the publisher and never fail the booking.
func (h *ReservationHandler) Create(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.UserName == "" || req.ListingID == 0 || req.CheckIn == "" || req.CheckOut == "" || req.TotalPrice == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "user_name, listing_id, check_in, check_out and total_price are required"})
	}
	checkIn, err := time.Parse(stayDateLayout, req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(stayDateLayout, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "check_out must be YYYY-MM-DD"})
	}
	guests := req.Guests
	if guests < 1 {
		guests = 1
	}

	ctx := c.Request().Context()
	listing, err := h.Listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load listing"})
	}

	quote, err := pricing.Compute(listing.PricePerNight, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "check_out must be after check_in"})
	}

	res := &model.Reservation{
		UserID:     ident.ID,
		ListingID:  listing.ID,
		UserName:   req.UserName,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		TotalPrice: quote.Total,
		Status:     model.ReservationPaid,
	}
	if err := h.Reservations.Create(ctx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create reservation"})
	}

	// Notify downstream consumers. Detached context: the publish must
	// not be cancelled when the HTTP request finishes.
	event := queue.ReservationPaidEvent{
		ReservationID:   res.ID,
		UserID:          ident.ID,
		UserName:        req.UserName,
		ListingID:       listing.ID,
		ListingTitle:    listing.Title,
		ListingLocation: listing.Location,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          guests,
		Nights:          quote.Nights,
		TotalPrice:      quote.Total,
		PaidAt:          time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = publisher.PublishReservationPaid(context.Background(), event) }()

	return c.JSON(http.StatusCreated, echo.Map{
		"ok":          true,
		"id":          res.ID,
		"total_price": quote.Total,
		"quote":       quote,
	})
}

// ListMine handles GET /api/my-reservations. Reservations are joined
// with listing title, thumbnail and location for display.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	details, err := h.Reservations.ListByUser(c.Request().Context(), ident.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, details)
}

// Get handles GET /api/reservations/:id for the owning user. A
// reservation belonging to someone else is indistinguishable from a
// missing one.
func (h *ReservationHandler) Get(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, okID := parseID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid reservation id"})
	}
	detail, err := h.Reservations.GetByIDForUser(c.Request().Context(), id, ident.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, detail)
}

// Cancel handles DELETE /api/reservations/:id. The owning user may
// cancel their own reservation; admins may cancel anyone's. A caller
// who owns neither role nor row gets a 403.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, okID := parseID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid reservation id"})
	}
	err := h.Reservations.Cancel(c.Request().Context(), id, ident.ID, ident.Role == model.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"message": "reservation already canceled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to cancel reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}
