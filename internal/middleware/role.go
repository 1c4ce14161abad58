package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/stayplan/stayplan-server/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated identity holds one of the specified roles. It assumes
// JWTAuth already ran and stored the Identity; a missing identity is a
// 401 rather than a 403 because the chain was misconfigured, not the
// caller under-privileged.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ident, ok := CurrentIdentity(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
            }
            // Role is a closed type; anything not in the allowed set is
            // rejected, including values that never came from ParseRole.
            switch ident.Role {
            case model.RoleUser, model.RoleSeller, model.RoleAdmin:
                if allowed[ident.Role] {
                    return next(c)
                }
            }
            return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
        }
    }
}
