package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

    "github.com/stayplan/stayplan-server/internal/model"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the decoded Identity into the request context. The provided
// secret must match the one used when issuing tokens. An absent or
// malformed Authorization header is a 401 (the caller never authenticated);
// a present token that fails signature or expiry checks is a 403 (the
// caller authenticated once but the credential is no longer acceptable).
// There is no refresh flow, so a 403 on expiry simply sends the user back
// to the login screen.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header. A valid header starts with
            // "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse the token using the HS256 signing method and our secret.
            // The callback supplies the signing key and rejects any token
            // signed with a different algorithm.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid or expired token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid claims"})
            }

            ident, ok := identityFromClaims(claims)
            if !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid claims"})
            }
            c.Set(identityKey, ident)
            return next(c)
        }
    }
}

// identityFromClaims builds an Identity from verified claims. It fails
// when the subject is missing or the role is outside the closed set.
func identityFromClaims(claims jwt.MapClaims) (Identity, bool) {
    var ident Identity
    sub, ok := claims["sub"].(float64)
    if !ok || sub <= 0 {
        return ident, false
    }
    ident.ID = uint64(sub)
    ident.LoginID, _ = claims["login_id"].(string)
    ident.Name, _ = claims["name"].(string)
    roleStr, _ := claims["role"].(string)
    role, err := model.ParseRole(roleStr)
    if err != nil {
        return ident, false
    }
    ident.Role = role
    return ident, true
}
