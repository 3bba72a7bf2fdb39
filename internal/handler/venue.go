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

// VenueService is implemented by *service.VenueService.
type VenueService interface {
	Areas(ctx context.Context) ([]service.Area, error)
	Search(ctx context.Context, term string) (service.SearchResults, error)
	Get(ctx context.Context, id uint64) (*model.Venue, error)
	Detail(ctx context.Context, id uint64) (*service.VenueDetail, error)
	Create(ctx context.Context, f form.VenueForm) (*model.Venue, error)
	Update(ctx context.Context, id uint64, f form.VenueForm) (*model.Venue, error)
	Delete(ctx context.Context, id uint64) error
}

// VenueFormData feeds the venue create and edit forms.  ID is zero on the
// create form.
type VenueFormData struct {
	Form form.VenueForm
	ID   uint64
}

// VenueHandler serves /venues.
type VenueHandler struct {
	Venues VenueService
}

// List renders every venue grouped by city and state.
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.Venues.Areas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/venues", view.Page{Title: "Venues", Data: areas})
}

// Search handles POST /venues/search.
func (h *VenueHandler) Search(c echo.Context) error {
	res, err := h.Venues.Search(c.Request().Context(), c.FormValue("search_term"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/search_venues", view.Page{Title: "Venue search", Data: res})
}

// Show renders the venue page with its past and upcoming shows.
func (h *VenueHandler) Show(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.Venues.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "pages/show_venue", view.Page{Title: d.Venue.Name, Data: d})
}

// CreateForm renders an empty venue form.
func (h *VenueHandler) CreateForm(c echo.Context) error {
	return c.Render(http.StatusOK, "forms/new_venue", view.Page{Title: "New venue", Data: VenueFormData{}})
}

// Create handles the venue form submission.
func (h *VenueHandler) Create(c echo.Context) error {
	values, err := formValues(c)
	if err != nil {
		return err
	}
	f := form.ParseVenue(values)
	v, err := h.Venues.Create(c.Request().Context(), f)
	if err != nil {
		return rejectForm(c, err, "forms/new_venue", "New venue", VenueFormData{Form: f})
	}
	return c.Render(http.StatusOK, "pages/home", view.Page{
		Title: "Home",
		Flash: "Venue " + v.Name + " was successfully listed!",
	})
}

// EditForm renders the venue form filled with the stored values.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.Venues.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "forms/edit_venue", view.Page{
		Title: "Edit " + v.Name,
		Data:  VenueFormData{Form: form.VenueFormFrom(*v), ID: id},
	})
}

// Update handles the edit form submission and redirects to the venue page.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	values, err := formValues(c)
	if err != nil {
		return err
	}
	f := form.ParseVenue(values)
	if _, err := h.Venues.Update(c.Request().Context(), id, f); err != nil {
		return rejectForm(c, err, "forms/edit_venue", "Edit venue", VenueFormData{Form: f, ID: id})
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", id))
}

// Delete removes the venue and its shows.  It answers a plain "OK".
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.String(http.StatusOK, "OK")
}
