package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/service"
	"github.com/nikosDal/fyyur-01/internal/view"
)

// ArtistService is implemented by *service.ArtistService.
type ArtistService interface {
	List(ctx context.Context) ([]model.ArtistSummary, error)
	Search(ctx context.Context, term string) (service.SearchResults, error)
	Get(ctx context.Context, id uint64) (*model.Artist, error)
	Detail(ctx context.Context, id uint64) (*service.ArtistDetail, error)
	Create(ctx context.Context, f form.ArtistForm) (*model.Artist, error)
	Update(ctx context.Context, id uint64, f form.ArtistForm) (*model.Artist, error)
	Delete(ctx context.Context, id uint64) error
}

// ArtistFormData feeds the artist create and edit forms.
type ArtistFormData struct {
	Form form.ArtistForm
	ID   uint64
}

// ArtistHandler serves /artists.
type ArtistHandler struct {
	Artists ArtistService
}

func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Artists.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/artists", view.Page{Title: "Artists", Data: artists})
}

func (h *ArtistHandler) Search(c echo.Context) error {
	res, err := h.Artists.Search(c.Request().Context(), c.FormValue("search_term"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_artists", view.Page{Title: "Artist search", Data: res})
}

func (h *ArtistHandler) Show(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.Artists.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/show_artist", view.Page{Title: d.Artist.Name, Data: d})
}

func (h *ArtistHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_artist", view.Page{Title: "New artist", Data: ArtistFormData{}})
}

func (h *ArtistHandler) Create(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}
	f := form.ParseArtist(values)
	a, err := h.Artists.Create(c.Request().Context(), f)
	if err != nil {
		return rejectForm(c, err, "forms/new_artist", "New artist", ArtistFormData{Form: f})
	}
	return c.Render(http.StatusOK, "pages/home", view.Page{
		Title: "Home",
		Flash: "Artist " + a.Name + " was successfully listed!",
	})
}

func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.Artists.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_artist", view.Page{
		Title: "Edit " + a.Name,
		Data:  ArtistFormData{Form: form.ArtistFormFrom(*a), ID: id},
	})
}

func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	values, err := formValues(c)
	if err != nil {
		return err
	}
	f := form.ParseArtist(values)
	if _, err := h.Artists.Update(c.Request().Context(), id, f); err != nil {
		return rejectForm(c, err, "forms/edit_artist", "Edit artist", ArtistFormData{Form: f, ID: id})
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", id))
}

// Delete removes the artist and its shows.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Artists.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "OK")
}
