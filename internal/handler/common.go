package handler // handler defines http handlers

import (
    "strconv" // strconv converts strings to numeric types

    "github.com/labstack/echo/v4" // echo defines request context types
)

// Default pagination bounds for admin list endpoints.
const (
    defaultPage  = 1
    defaultLimit = 10
    maxLimit     = 100
)

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// parsePagination translates ?page and ?limit query parameters into
// sane values for LIMIT/OFFSET queries. Out-of-range input falls back
// to the defaults rather than erroring; the admin tables always render.
func parsePagination(c echo.Context) (page, limit int) {
    page = defaultPage
    limit = defaultLimit
    if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
        page = v
    }
    if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
        limit = v
    }
    if limit > maxLimit {
        limit = maxLimit
    }
    return page, limit
}
