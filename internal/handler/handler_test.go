package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/repository"
	"github.com/nikosDal/fyyur-01/internal/service"
	"github.com/nikosDal/fyyur-01/internal/view"
)

type fakeVenueService struct {
	venue      *model.Venue
	err        error
	gotTerm    string
	gotForm    form.VenueForm
	gotID      uint64
	deleted    []uint64
	createCall int
}

func (f *fakeVenueService) Areas(context.Context) ([]service.Area, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []service.Area{
		{City: "San Francisco", State: "CA", Venues: []model.VenueSummary{{ID: 1, Name: "The Musical Hop"}}},
		{City: "New York", State: "NY", Venues: []model.VenueSummary{{ID: 2, Name: "The Dueling Pianos Bar"}}},
	}, nil
}

func (f *fakeVenueService) Search(_ context.Context, term string) (service.SearchResults, error) {
	f.gotTerm = term
	return service.SearchResults{Term: term, Count: 1, Data: []repository.SearchResult{{ID: 1, Name: "The Musical Hop", NumUpcomingShows: 2}}}, nil
}

func (f *fakeVenueService) Get(_ context.Context, id uint64) (*model.Venue, error) {
	if f.venue == nil || f.venue.ID != id {
		return nil, repository.ErrVenueNotFound
	}
	return f.venue, nil
}

func (f *fakeVenueService) Detail(ctx context.Context, id uint64) (*service.VenueDetail, error) {
	v, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &service.VenueDetail{Venue: *v, PastShows: []service.ShowEntry{}, UpcomingShows: []service.ShowEntry{}}, nil
}

func (f *fakeVenueService) Create(_ context.Context, vf form.VenueForm) (*model.Venue, error) {
	f.createCall++
	f.gotForm = vf
	if f.err != nil {
		return nil, f.err
	}
	v, err := form.ValidateVenue(vf)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f *fakeVenueService) Update(_ context.Context, id uint64, vf form.VenueForm) (*model.Venue, error) {
	f.gotID, f.gotForm = id, vf
	if f.err != nil {
		return nil, f.err
	}
	v, err := form.ValidateVenue(vf)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (f *fakeVenueService) Delete(_ context.Context, id uint64) error {
	if f.venue == nil || f.venue.ID != id {
		return repository.ErrVenueNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeShowService struct {
	err error
}

func (f *fakeShowService) List(context.Context) ([]model.ShowListing, error) {
	return []model.ShowListing{{
		ID:        1,
		StartTime: time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
		Venue:     model.VenueSummary{ID: 1, Name: "The Musical Hop"},
		Artist:    model.ArtistSummary{ID: 4, Name: "Guns N Petals"},
	}}, nil
}

func (f *fakeShowService) Create(_ context.Context, sf form.ShowForm) (*model.Show, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, err := form.ValidateShow(sf)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.New()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = r
	e.HTTPErrorHandler = ErrorHandler
	return e
}

func serve(e *echo.Echo, method, target string, body url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func venueRoutes(e *echo.Echo, svc VenueService) {
	h := &VenueHandler{Venues: svc}
	e.GET("/venues", h.List)
	e.POST("/venues/search", h.Search)
	e.GET("/venues/create", h.CreateForm)
	e.POST("/venues/create", h.Create)
	e.GET("/venues/:id", h.Show)
	e.GET("/venues/:id/edit", h.EditForm)
	e.POST("/venues/:id/edit", h.Update)
	e.DELETE("/venues/:id", h.Delete)
}

func validVenueValues() url.Values {
	return url.Values{
		"name":    {"The Musical Hop"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"genres":  {"Jazz", "Reggae"},
	}
}

func TestVenueListGroupsByArea(t *testing.T) {
	e := newTestEcho(t)
	venueRoutes(e, &fakeVenueService{})

	rec := serve(e, http.MethodGet, "/venues", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "San Francisco, CA")
	assert.Contains(t, rec.Body.String(), `href="/venues/2"`)
}

func TestVenueCreateInvalidListsEveryError(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeVenueService{}
	venueRoutes(e, svc)

	values := validVenueValues()
	values.Del("name")
	values.Set("website", "notaurl")
	rec := serve(e, http.MethodPost, "/venues/create", values)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "name is required")
	assert.Contains(t, body, "website has an invalid format")
	assert.Contains(t, body, `value="notaurl"`, "the form keeps what was submitted")
	assert.Equal(t, 1, svc.createCall)
}

func TestVenueCreateSuccessFlashes(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeVenueService{}
	venueRoutes(e, svc)

	rec := serve(e, http.MethodPost, "/venues/create", validVenueValues())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue The Musical Hop was successfully listed!")
	assert.Equal(t, []string{"Jazz", "Reggae"}, svc.gotForm.Genres)
}

func TestVenueCreatePersistenceFailureIs500(t *testing.T) {
	e := newTestEcho(t)
	venueRoutes(e, &fakeVenueService{err: &service.PersistenceError{Op: "create venue", Subject: "The Musical Hop", Err: errors.New("db gone")}})

	rec := serve(e, http.MethodPost, "/venues/create", validVenueValues())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "500 Server Error")
	assert.Contains(t, rec.Body.String(), "Failed to list venue The Musical Hop!")
	assert.NotContains(t, rec.Body.String(), "db gone")
}

func TestVenueShowAndNotFound(t *testing.T) {
	e := newTestEcho(t)
	venueRoutes(e, &fakeVenueService{venue: &model.Venue{ID: 1, Name: "The Musical Hop", Genres: model.Genres{"Jazz"}}})

	rec := serve(e, http.MethodGet, "/venues/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>The Musical Hop</h1>")

	for _, target := range []string{"/venues/9", "/venues/abc", "/venues/0", "/venues/9/edit"} {
		rec = serve(e, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "404 Not Found", target)
	}
}

func TestVenueEditFormPrefilled(t *testing.T) {
	e := newTestEcho(t)
	venueRoutes(e, &fakeVenueService{venue: &model.Venue{ID: 3, Name: "Park Square", State: "CA", Genres: model.Genres{"Folk"}}})

	rec := serve(e, http.MethodGet, "/venues/3/edit", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Park Square"`)
	assert.Contains(t, rec.Body.String(), `<option value="Folk" selected>`)
}

func TestVenueUpdateRedirects(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeVenueService{}
	venueRoutes(e, svc)

	rec := serve(e, http.MethodPost, "/venues/3/edit", validVenueValues())
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/venues/3", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, uint64(3), svc.gotID)

	svc.err = repository.ErrVenueNotFound
	rec = serve(e, http.MethodPost, "/venues/3/edit", validVenueValues())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueDelete(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeVenueService{venue: &model.Venue{ID: 5}}
	venueRoutes(e, svc)

	rec := serve(e, http.MethodDelete, "/venues/5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.Equal(t, []uint64{5}, svc.deleted)

	rec = serve(e, http.MethodDelete, "/venues/6", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueSearchPassesTerm(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeVenueService{}
	venueRoutes(e, svc)

	rec := serve(e, http.MethodPost, "/venues/search", url.Values{"search_term": {"Hop"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hop", svc.gotTerm)
	assert.Contains(t, rec.Body.String(), "(2 upcoming shows)")
}

func TestShowListAndCreate(t *testing.T) {
	e := newTestEcho(t)
	svc := &fakeShowService{}
	h := &ShowHandler{Shows: svc}
	e.GET("/shows", h.List)
	e.GET("/shows/create", h.CreateForm)
	e.POST("/shows/create", h.Create)

	rec := serve(e, http.MethodGet, "/shows", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tuesday May 21, 2019 at 9:30PM")

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/shows/create", nil).Code)

	good := url.Values{"artist_id": {"4"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00"}}
	rec = serve(e, http.MethodPost, "/shows/create", good)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Show was successfully listed!")

	rec = serve(e, http.MethodPost, "/shows/create", url.Values{"artist_id": {"4"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "venue_id is required")
	assert.Contains(t, rec.Body.String(), "start_time is required")

	svc.err = repository.ErrVenueNotFound
	rec = serve(e, http.MethodPost, "/shows/create", good)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "venue_id: no venue with that id")
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", (&HealthHandler{DB: pinger{}}).Health)
	e.GET("/down", (&HealthHandler{DB: pinger{err: errors.New("refused")}}).Health)

	rec := serve(e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, http.StatusServiceUnavailable, serve(e, http.MethodGet, "/down", nil).Code)
}

func TestErrorHandlerWithoutRenderer(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/boom", func(echo.Context) error { return errors.New("boom") })
	e.POST("/limited", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, "slow down")
	})

	rec := serve(e, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", rec.Body.String())

	rec = serve(e, http.MethodPost, "/limited", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "slow down", rec.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/missing", nil).Code)
}
