package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/stayplan/stayplan-server/internal/model"
    "github.com/stayplan/stayplan-server/internal/utils"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T, mws ...echo.MiddlewareFunc) *echo.Echo {
    t.Helper()
    e := echo.New()
    e.GET("/protected", func(c echo.Context) error {
        ident, ok := CurrentIdentity(c)
        require.True(t, ok)
        return c.JSON(http.StatusOK, echo.Map{"userId": ident.LoginID, "role": ident.Role.String()})
    }, mws...)
    return e
}

func doGet(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodGet, "/protected", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
    e := protectedEcho(t, JWTAuth(testSecret))

    rec := doGet(e, "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    // header present but not a bearer scheme
    rec = doGet(e, "Basic abc123")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
    e := protectedEcho(t, JWTAuth(testSecret))
    rec := doGet(e, "Bearer not-a-jwt")
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 1, "alice", "Alice", "user", -10)
    require.NoError(t, err)

    e := protectedEcho(t, JWTAuth(testSecret))
    rec := doGet(e, "Bearer "+tok.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("other-secret", 1, "alice", "Alice", "user", 180)
    require.NoError(t, err)

    e := protectedEcho(t, JWTAuth(testSecret))
    rec := doGet(e, "Bearer "+tok.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthValidTokenInjectsIdentity(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 42, "bob", "Bob", "seller", 180)
    require.NoError(t, err)

    e := protectedEcho(t, JWTAuth(testSecret))
    rec := doGet(e, "Bearer "+tok.Token)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"userId":"bob"`)
    assert.Contains(t, rec.Body.String(), `"role":"seller"`)
}

func TestJWTAuthRejectsUnknownRole(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 42, "bob", "Bob", "superuser", 180)
    require.NoError(t, err)

    e := protectedEcho(t, JWTAuth(testSecret))
    rec := doGet(e, "Bearer "+tok.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole(t *testing.T) {
    e := protectedEcho(t, JWTAuth(testSecret), RequireRole(model.RoleAdmin))

    // a plain user is rejected on an admin-only route
    userTok, err := utils.NewAccessToken(testSecret, 7, "carol", "Carol", "user", 180)
    require.NoError(t, err)
    rec := doGet(e, "Bearer "+userTok.Token)
    assert.Equal(t, http.StatusForbidden, rec.Code)

    // an admin passes
    adminTok, err := utils.NewAccessToken(testSecret, 8, "dave", "Dave", "admin", 180)
    require.NoError(t, err)
    rec = doGet(e, "Bearer "+adminTok.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
    // RequireRole without JWTAuth in front means no identity in context.
    e := echo.New()
    e.GET("/protected", func(c echo.Context) error {
        return c.NoContent(http.StatusOK)
    }, RequireRole(model.RoleUser))
    rec := doGet(e, "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
