package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/repository"
)

// NoticeHandler serves announcements to the public site. Only visible
// notices leave this surface; drafting and hiding happen in the admin
// namespace.
type NoticeHandler struct {
	Notices *repository.NoticeRepo
}

func NewNoticeHandler(n *repository.NoticeRepo) *NoticeHandler {
	if n == nil {
		panic("nil repository passed to NewNoticeHandler")
	}
	return &NoticeHandler{Notices: n}
}

type noticePart struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func toNoticePart(n model.Notice) noticePart {
	return noticePart{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format("2006-01-02"),
	}
}

// GetNotices handles GET /api/notices.
func (h *NoticeHandler) GetNotices(c echo.Context) error {
	items, err := h.Notices.ListVisible(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load notices"})
	}
	out := make([]noticePart, 0, len(items))
	for _, n := range items {
		out = append(out, toNoticePart(n))
	}
	return c.JSON(http.StatusOK, out)
}

// GetNotice handles GET /api/notices/:id. Hidden notices 404 like
// missing ones.
func (h *NoticeHandler) GetNotice(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid notice id"})
	}
	n, err := h.Notices.GetVisibleByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNoticeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "notice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to load notice"})
	}
	return c.JSON(http.StatusOK, toNoticePart(n))
}
