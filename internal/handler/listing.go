package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/repository"
)

// ListingHandler serves the public listing catalogue. These routes
// carry no authentication; the response cache middleware sits in front
// of them because catalogue pages are the hottest reads on the site.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

func NewListingHandler(l *repository.ListingRepo) *ListingHandler {
	if l == nil {
		panic("nil repository passed to NewListingHandler")
	}
	return &ListingHandler{Listings: l}
}

type listingPart struct {
	ID            uint64 `json:"id"`
	Title         string `json:"title"`
	Location      string `json:"location"`
	PricePerNight int64  `json:"price_per_night"`
	Description   string `json:"description,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	Type          string `json:"type"`
}

func toListingPart(l model.Listing) listingPart {
	return listingPart{
		ID:            l.ID,
		Title:         l.Title,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		Description:   l.Description,
		Thumbnail:     l.Thumbnail,
		Type:          l.Type,
	}
}

func toListingParts(items []model.Listing) []listingPart {
	out := make([]listingPart, 0, len(items))
	for _, l := range items {
		out = append(out, toListingPart(l))
	}
	return out
}

// GetListings handles GET /api/listings?type=domestic|abroad. With no
// type parameter every listing is returned; an unknown type is a 400.
func (h *ListingHandler) GetListings(c echo.Context) error {
	listingType := c.QueryParam("type")
	if listingType != "" && !model.ValidListingType(listingType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "type must be domestic or abroad"})
	}
	items, err := h.Listings.ListByType(c.Request().Context(), listingType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load listings"})
	}
	return c.JSON(http.StatusOK, toListingParts(items))
}

// GetListing handles GET /api/listings/:id.
func (h *ListingHandler) GetListing(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid listing id"})
	}
	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load listing"})
	}
	return c.JSON(http.StatusOK, toListingPart(l))
}

// SearchListings handles GET /api/listings/search?q=&page=&limit=. It
// matches the query against title and location and returns the page
// together with the total match count.
func (h *ListingHandler) SearchListings(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "q is required"})
	}
	page, limit := parsePagination(c)
	items, total, err := h.Listings.Search(c.Request().Context(), q, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": toListingParts(items),
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
