package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/stayplan/stayplan-server/internal/middleware"
    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/repository"
)

// SellerHandler lets sellers manage their own listings. Routes are
// guarded by RequireRole(seller, admin); ownership of individual rows
// is still enforced per operation so one seller can never touch
// another seller's inventory. Admins pass the ownership check.
type SellerHandler struct {
	Listings *repository.ListingRepo
}

func NewSellerHandler(l *repository.ListingRepo) *SellerHandler {
	if l == nil {
		panic("nil repository passed to NewSellerHandler")
	}
	return &SellerHandler{Listings: l}
}

type listingReq struct {
	Title         string `json:"title"`
	Location      string `json:"location"`
	PricePerNight int64  `json:"price_per_night"`
	Description   string `json:"description"`
	Thumbnail     string `json:"thumbnail"`
	Type          string `json:"type"`
}

func (r *listingReq) validate() string {
	if r.Title == "" || r.Location == "" {
		return "title and location are required"
	}
	if r.PricePerNight < 0 {
		return "price_per_night must not be negative"
	}
	if !model.ValidListingType(r.Type) {
		return "type must be domestic or abroad"
	}
	return ""
}

// List handles GET /api/seller/listings and returns only the caller's
// inventory.
func (h *SellerHandler) List(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	items, err := h.Listings.ListByOwner(c.Request().Context(), ident.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load listings"})
	}
	return c.JSON(http.StatusOK, toListingParts(items))
}

// Create handles POST /api/seller/listings.
func (h *SellerHandler) Create(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req listingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	l := &model.Listing{
		Title:         req.Title,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		Description:   req.Description,
		Thumbnail:     req.Thumbnail,
		Type:          req.Type,
		OwnerID:       ident.ID,
	}
	if err := h.Listings.Create(c.Request().Context(), l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to create listing"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "id": l.ID})
}

// Update handles PUT /api/seller/listings/:id.
func (h *SellerHandler) Update(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, okID := parseID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid listing id"})
	}
	var req listingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	l := &model.Listing{
		ID:            id,
		Title:         req.Title,
		Location:      req.Location,
		PricePerNight: req.PricePerNight,
		Description:   req.Description,
		Thumbnail:     req.Thumbnail,
		Type:          req.Type,
	}
	err := h.Listings.UpdateOwned(c.Request().Context(), l, ident.ID, ident.Role == model.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "listing not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update listing"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Delete handles DELETE /api/seller/listings/:id.
func (h *SellerHandler) Delete(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	id, okID := parseID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid listing id"})
	}
	err := h.Listings.DeleteOwned(c.Request().Context(), id, ident.ID, ident.Role == model.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrListingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "listing not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to delete listing"})
	}
	return c.NoContent(http.StatusNoContent)
}
