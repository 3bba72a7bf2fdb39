package router // package router defines how HTTP routes are registered

import (
	"github.com/labstack/echo/v4"

	"github.com/nikosDal/fyyur-01/internal/handler"
)

// Handlers groups the handlers RegisterRoutes mounts.
type Handlers struct {
	Health  *handler.HealthHandler
	Venues  *handler.VenueHandler
	Artists *handler.ArtistHandler
	Shows   *handler.ShowHandler
}

// RegisterRoutes mounts every page of the site on e.  limit guards the
// routes that write (form submissions and deletes); pass nil to leave them
// unlimited.
func RegisterRoutes(e *echo.Echo, h Handlers, limit echo.MiddlewareFunc) {
	var writes []echo.MiddlewareFunc
	if limit != nil {
		writes = append(writes, limit)
	}

	e.GET("/", handler.Home)
	e.GET("/healthz", h.Health.Health)

	// ---- Venues ----
	v := e.Group("/venues")
	v.GET("", h.Venues.List)
	v.POST("/search", h.Venues.Search)
	v.GET("/create", h.Venues.CreateForm)
	v.POST("/create", h.Venues.Create, writes...)
	v.GET("/:id", h.Venues.Show)
	v.GET("/:id/edit", h.Venues.EditForm)
	v.POST("/:id/edit", h.Venues.Update, writes...)
	v.DELETE("/:id", h.Venues.Delete, writes...)

	// ---- Artists ----
	a := e.Group("/artists")
	a.GET("", h.Artists.List)
	a.POST("/search", h.Artists.Search)
	a.GET("/create", h.Artists.CreateForm)
	a.POST("/create", h.Artists.Create, writes...)
	a.GET("/:id", h.Artists.Show)
	a.GET("/:id/edit", h.Artists.EditForm)
	a.POST("/:id/edit", h.Artists.Update, writes...)
	a.DELETE("/:id", h.Artists.Delete, writes...)

	// ---- Shows ----
	s := e.Group("/shows")
	s.GET("", h.Shows.List)
	s.GET("/create", h.Shows.CreateForm)
	s.POST("/create", h.Shows.Create, writes...)
}
