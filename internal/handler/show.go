package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/repository"
	"github.com/nikosDal/fyyur-01/internal/view"
)

// ShowService is implemented by *service.ShowService.
type ShowService interface {
	List(ctx context.Context) ([]model.ShowListing, error)
	Create(ctx context.Context, f form.ShowForm) (*model.Show, error)
}

// ShowFormData feeds the show form.
type ShowFormData struct {
	Form form.ShowForm
}

// ShowHandler serves /shows.
type ShowHandler struct {
	Shows ShowService
}

// List renders every show ordered by start time.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/shows", view.Page{Title: "Shows", Data: shows})
}

func (h *ShowHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_show", view.Page{Title: "New show", Data: ShowFormData{}})
}

// Create schedules a show.  When the artist or venue does not exist the
// form is shown again with a 404 naming the missing side.
func (h *ShowHandler) Create(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}
	f := form.ParseShow(values)
	if _, err := h.Shows.Create(c.Request().Context(), f); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Render(http.StatusNotFound, "forms/new_show", view.Page{
				Title:  "New show",
				Errors: []string{missingParent(err)},
				Data:   ShowFormData{Form: f},
			})
		}
		return rejectForm(c, err, "forms/new_show", "New show", ShowFormData{Form: f})
	}
	return c.Render(http.StatusOK, "pages/home", view.Page{Title: "Home", Flash: "Show was successfully listed!"})
}

func missingParent(err error) string {
	switch {
	case errors.Is(err, repository.ErrArtistNotFound):
		return "artist_id: no artist with that id"
	case errors.Is(err, repository.ErrVenueNotFound):
		return "venue_id: no venue with that id"
	}
	return "the artist or venue does not exist"
}
