package router

import (
	"github.com/labstack/echo/v4"

	"github.com/stayplan/stayplan-server/internal/handler"
	"github.com/stayplan/stayplan-server/internal/middleware"
	"github.com/stayplan/stayplan-server/internal/model"
)

// RegisterSeller registers the seller inventory surface under
// /api/seller.  Admins are allowed through the role gate too, so the
// same screens work for both tiers; per-row ownership checks live in
// the repository layer.
func RegisterSeller(e *echo.Echo, s *handler.SellerHandler, jwtSecret string) {
	g := e.Group("/api/seller")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleSeller, model.RoleAdmin))

	g.GET("/listings", s.List)
	g.POST("/listings", s.Create)
	g.PUT("/listings/:id", s.Update)
	g.DELETE("/listings/:id", s.Delete)
}
