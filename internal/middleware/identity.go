package middleware

// identity.go defines the request-scoped identity attached by JWTAuth.
// Handlers never reach into raw JWT claims or any global session state;
// they ask the context for an Identity and match on its Role.

import (
    "github.com/labstack/echo/v4"

    "github.com/stayplan/stayplan-server/internal/model"
)

// identityKey is the context key under which JWTAuth stores the
// authenticated identity.
const identityKey = "identity"

// Identity is the decoded caller of a protected request: who they are
// and which access tier they hold. It is built once per request from
// the verified token claims.
type Identity struct {
    ID      uint64     // numeric user id (JWT sub)
    LoginID string     // login identifier
    Name    string     // display name
    Role    model.Role // access tier
}

// CurrentIdentity returns the identity stored by JWTAuth. The boolean
// is false on unauthenticated requests (public routes, or middleware
// misordering).
func CurrentIdentity(c echo.Context) (Identity, bool) {
    v := c.Get(identityKey)
    ident, ok := v.(Identity)
    return ident, ok
}

// currentUserID returns a string form of the authenticated user id for
// rate-limit key building. Unauthenticated callers share the "anon"
// bucket per IP.
func currentUserID(c echo.Context) string {
    if ident, ok := CurrentIdentity(c); ok {
        return ident.LoginID
    }
    return "anon"
}
