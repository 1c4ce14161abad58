package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/stayplan/stayplan-server/internal/handler"    // handlers that implement business logic
	"github.com/stayplan/stayplan-server/internal/middleware" // middleware for JWT authentication and role enforcement
	"github.com/stayplan/stayplan-server/internal/model"      // role constants for route guards
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check; the
// public catalogue and auth endpoints are registered separately so callers
// can attach caching middleware to the catalogue group.
func RegisterRoutes(e *echo.Echo) {
	// Health endpoint used by load balancers and monitoring systems to
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers signup/login and the protected identity route.
// Unauthenticated operations live under /api, while /api/me requires a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/api/signup", a.Signup)
	e.POST("/api/login", a.Login)

	// /api/me is available to every authenticated role.
	me := e.Group("/api")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: the listing
// catalogue and visible notices.  The extra middleware (typically the Redis
// response cache) is applied only to this group because these are the
// hottest read paths and carry no per-user data.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler, n *handler.NoticeHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api", mw...)
	// Listing search must be registered before /listings/:id so Echo does
	// not treat "search" as an id.
	g.GET("/listings/search", l.SearchListings)
	g.GET("/listings", l.GetListings)
	g.GET("/listings/:id", l.GetListing)
	g.GET("/notices", n.GetNotices)
	g.GET("/notices/:id", n.GetNotice)
}

// RegisterCustomer registers the booking and account routes available to
// every authenticated role.  JWTAuth runs first and stores the request
// identity; RequireRole then rejects any token whose role claim is outside
// the closed set.
func RegisterCustomer(e *echo.Echo, r *handler.ReservationHandler, p *handler.ProfileHandler, jwtSecret string) {
	g := e.Group("/api")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleUser, model.RoleSeller, model.RoleAdmin))

	g.POST("/reservations", r.Create)
	g.GET("/my-reservations", r.ListMine)
	g.GET("/reservations/:id", r.Get)
	g.DELETE("/reservations/:id", r.Cancel)

	g.PATCH("/profile/update", p.Update)
	g.PATCH("/profile/password", p.UpdatePassword)
	g.POST("/profile/upload", p.Upload)
	g.DELETE("/profile", p.Delete)
}
