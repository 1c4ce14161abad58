package handler

import (
    "database/sql"
    "errors"
    "io"
    "net/http"
    "os"
    "path/filepath"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/stayplan/stayplan-server/internal/config"
    "github.com/stayplan/stayplan-server/internal/middleware"
    "github.com/stayplan/stayplan-server/internal/repository"
    "github.com/stayplan/stayplan-server/internal/utils"
)

// Extensions accepted for profile image uploads.
var allowedImageExt = map[string]bool{
    ".jpg":  true,
    ".jpeg": true,
    ".png":  true,
    ".gif":  true,
    ".webp": true,
}

// ProfileHandler lets an authenticated user manage their own account:
// name/email, password, avatar upload and account deletion. Uploaded
// files land in the configured uploads directory and are served
// statically under /uploads.
type ProfileHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewProfileHandler(cfg config.Config, u *repository.UserRepo) *ProfileHandler {
	if u == nil {
		panic("nil repository passed to NewProfileHandler")
	}
	return &ProfileHandler{Cfg: cfg, Users: u}
}

type updateProfileReq struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Update handles PATCH /api/profile/update.
func (h *ProfileHandler) Update(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name and email are required"})
	}
	if err := h.Users.UpdateProfile(c.Request().Context(), ident.ID, req.Name, req.Email); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update profile"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

type updatePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdatePassword handles PATCH /api/profile/password. The current
// password must verify before the hash is replaced.
func (h *ProfileHandler) UpdatePassword(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req updatePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "current_password and new_password are required"})
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "current password is incorrect"})
	}
	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to hash password"})
	}
	if err := h.Users.UpdatePassword(ctx, ident.ID, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Upload handles POST /api/profile/upload (multipart field "image").
// The file is stored under the uploads directory with a random hex
// name and the user's profile_image column is updated with the
// relative path the static file server exposes.
func (h *ProfileHandler) Upload(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "image file is required"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unsupported image type"})
	}

	name, err := utils.RandomHex(16)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to name upload"})
	}
	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to prepare upload dir"})
	}
	dstPath := filepath.Join(h.Cfg.UploadDir, name+ext)

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to read upload"})
	}
	defer src.Close()
	dst, err := os.Create(dstPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to store upload"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to store upload"})
	}

	rel := "/uploads/" + name + ext
	if err := h.Users.UpdateProfileImage(c.Request().Context(), ident.ID, rel); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to update profile image"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "profile_image": rel})
}

// Delete handles DELETE /api/profile and removes the caller's account.
func (h *ProfileHandler) Delete(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	if err := h.Users.Delete(c.Request().Context(), ident.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to delete account"})
	}
	return c.NoContent(http.StatusNoContent)
}
