package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // SQL sentinel errors
    "errors"       // errors.Is comparisons
    "net/http"     // HTTP status codes and primitives
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/stayplan/stayplan-server/internal/config"     // app configuration
    "github.com/stayplan/stayplan-server/internal/middleware" // request identity access
    "github.com/stayplan/stayplan-server/internal/model"      // domain types
    "github.com/stayplan/stayplan-server/internal/repository" // DB repositories
    "github.com/stayplan/stayplan-server/internal/utils"      // hashing and token issuing
)

// AuthHandler bundles dependencies for signup/login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type signupReq struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}
type loginReq struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type userPart struct {
	ID           uint64 `json:"id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
}

func toUserPart(u model.User) userPart {
	return userPart{
		ID:           u.ID,
		UserID:       u.LoginID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role.String(),
		ProfileImage: u.ProfileImage,
	}
}

// Signup creates a user account. Every new account starts with the
// `user` role; sellers and admins are promoted through the admin
// surface. A duplicate login id is a 400: uniqueness is enforced by
// the database constraint, so two concurrent signups with the same id
// can never both insert.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.UserID == "" || req.Password == "" || req.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId, password, name and email are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, err := h.Users.Create(ctx, req.UserID, req.Password, req.Name, req.Email, model.RoleUser, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUserIDExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "signup failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "signup complete"})
}

// Login verifies credentials and issues a three hour access token.
// Unknown login id and wrong password are indistinguishable to the
// caller; neither ever produces a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "userId and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByLoginID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.LoginID, u.Name, u.Role.String(), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok":    true,
		"token": access.Token,
		"user":  toUserPart(u),
	})
}

// Me returns the identity decoded from the access token.
func (h *AuthHandler) Me(c echo.Context) error {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":     ident.ID,
		"userId": ident.LoginID,
		"name":   ident.Name,
		"role":   ident.Role.String(),
	})
}
