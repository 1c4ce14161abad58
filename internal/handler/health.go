package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health answers liveness probes. It does not touch the database or
// Redis: a degraded cache must not take the whole service out of the
// load balancer rotation.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
