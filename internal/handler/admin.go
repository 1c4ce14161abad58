package handler

import (
    "database/sql"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/repository"
)

// AdminHandler implements the /api/admin namespace: paginated list
// views plus single-row mutations over users, listings, reservations
// and notices. Every route is guarded by RequireRole(admin); the
// handlers themselves do no further role checks.
type AdminHandler struct {
	Users        *repository.UserRepo
	Listings     *repository.ListingRepo
	Reservations *repository.ReservationRepo
	Notices      *repository.NoticeRepo
}

func NewAdminHandler(u *repository.UserRepo, l *repository.ListingRepo, r *repository.ReservationRepo, n *repository.NoticeRepo) *AdminHandler {
	if u == nil || l == nil || r == nil || n == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: u, Listings: l, Reservations: r, Notices: n}
}

func pageResp(items any, total int64, page, limit int) echo.Map {
	return echo.Map{"items": items, "total": total, "page": page, "limit": limit}
}

// ----- users -----

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, limit := parsePagination(c)
	users, total, err := h.Users.List(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load users"})
	}
	parts := make([]userPart, 0, len(users))
	for _, u := range users {
		parts = append(parts, toUserPart(u))
	}
	return c.JSON(http.StatusOK, pageResp(parts, total, page, limit))
}

type adminUserReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateUser handles PUT /api/admin/users/:id. Role changes go through
// ParseRole so only the closed set of tiers can ever be stored.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and email are required"})
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "role must be user, seller or admin"})
	}
	if err := h.Users.AdminUpdate(c.Request().Context(), id, req.Name, req.Email, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to delete user"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- listings -----

// ListListings handles GET /api/admin/listings.
func (h *AdminHandler) ListListings(c echo.Context) error {
	page, limit := parsePagination(c)
	items, total, err := h.Listings.List(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load listings"})
	}
	return c.JSON(http.StatusOK, pageResp(toListingParts(items), total, page, limit))
}

// DeleteListing handles DELETE /api/admin/listings/:id.
func (h *AdminHandler) DeleteListing(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid listing id"})
	}
	err := h.Listings.DeleteOwned(c.Request().Context(), id, 0, true)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to delete listing"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- reservations -----

// ListReservations handles GET /api/admin/reservations.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	page, limit := parsePagination(c)
	items, total, err := h.Reservations.ListAll(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, pageResp(items, total, page, limit))
}

// DeleteReservation handles DELETE /api/admin/reservations/:id.
func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid reservation id"})
	}
	if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to delete reservation"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- notices -----

type noticeReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Visible *bool  `json:"visible"`
}

// ListNotices handles GET /api/admin/notices and includes hidden rows.
func (h *AdminHandler) ListNotices(c echo.Context) error {
	page, limit := parsePagination(c)
	items, total, err := h.Notices.List(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load notices"})
	}
	return c.JSON(http.StatusOK, pageResp(items, total, page, limit))
}

// CreateNotice handles POST /api/admin/notices. Notices default to
// visible unless the body says otherwise.
func (h *AdminHandler) CreateNotice(c echo.Context) error {
	var req noticeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title and content are required"})
	}
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	n := &model.Notice{Title: req.Title, Content: req.Content, Visible: visible}
	if err := h.Notices.Create(c.Request().Context(), n); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create notice"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "id": n.ID})
}

// UpdateNotice handles PUT /api/admin/notices/:id.
func (h *AdminHandler) UpdateNotice(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid notice id"})
	}
	var req noticeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Title == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "title and content are required"})
	}
	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	n := &model.Notice{ID: id, Title: req.Title, Content: req.Content, Visible: visible}
	if err := h.Notices.Update(c.Request().Context(), n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "notice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update notice"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// DeleteNotice handles DELETE /api/admin/notices/:id.
func (h *AdminHandler) DeleteNotice(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid notice id"})
	}
	if err := h.Notices.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "notice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to delete notice"})
	}
	return c.NoContent(http.StatusNoContent)
}
