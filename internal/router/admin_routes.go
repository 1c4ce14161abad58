package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stayplan/stayplan-server/internal/handler"
	"github.com/stayplan/stayplan-server/internal/middleware"
	"github.com/stayplan/stayplan-server/internal/model"
)

// RegisterAdmin registers the /api/admin namespace.  Every route
// requires a valid access token carrying the admin role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/api/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/users", a.ListUsers)
	g.PUT("/users/:id", a.UpdateUser)
	g.DELETE("/users/:id", a.DeleteUser)

	g.GET("/listings", a.ListListings)
	g.DELETE("/listings/:id", a.DeleteListing)

	g.GET("/reservations", a.ListReservations)
	g.DELETE("/reservations/:id", a.DeleteReservation)

	g.GET("/notices", a.ListNotices)
	g.POST("/notices", a.CreateNotice)
	g.PUT("/notices/:id", a.UpdateNotice)
	g.DELETE("/notices/:id", a.DeleteNotice)
}
