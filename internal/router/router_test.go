package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/nikosDal/fyyur-01/internal/handler"
)

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, Handlers{
		Health:  &handler.HealthHandler{},
		Venues:  &handler.VenueHandler{},
		Artists: &handler.ArtistHandler{},
		Shows:   &handler.ShowHandler{},
	}, nil)

	var got []string
	for _, r := range e.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}
	sort.Strings(got)

	want := []string{
		"DELETE /artists/:id",
		"DELETE /venues/:id",
		"GET /",
		"GET /artists",
		"GET /artists/:id",
		"GET /artists/:id/edit",
		"GET /artists/create",
		"GET /healthz",
		"GET /shows",
		"GET /shows/create",
		"GET /venues",
		"GET /venues/:id",
		"GET /venues/:id/edit",
		"GET /venues/create",
		"POST /artists/:id/edit",
		"POST /artists/create",
		"POST /artists/search",
		"POST /shows/create",
		"POST /venues/:id/edit",
		"POST /venues/create",
		"POST /venues/search",
	}
	assert.Equal(t, want, got)
}

func TestWritesAreLimited(t *testing.T) {
	e := echo.New()
	blocked := func(echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error { return c.NoContent(http.StatusTooManyRequests) }
	}
	RegisterRoutes(e, Handlers{
		Health:  &handler.HealthHandler{},
		Venues:  &handler.VenueHandler{},
		Artists: &handler.ArtistHandler{},
		Shows:   &handler.ShowHandler{},
	}, blocked)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/venues/create"},
		{http.MethodPost, "/artists/2/edit"},
		{http.MethodDelete, "/venues/1"},
		{http.MethodPost, "/shows/create"},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, tc.path)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
