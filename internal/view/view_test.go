package view

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/service"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, nil))
	return buf.String()
}

func TestAllPagesParse(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	for _, name := range []string{
		"pages/home", "pages/venues", "pages/artists", "pages/shows",
		"pages/search_venues", "pages/search_artists", "pages/show_venue", "pages/show_artist",
		"forms/new_venue", "forms/edit_venue", "forms/new_artist", "forms/edit_artist", "forms/new_show",
		"errors/404", "errors/500",
	} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layouts/main"))
	assert.False(t, r.Has("partials/entries"))
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "pages/nope", nil, nil))
}

func TestFormatDatetime(t *testing.T) {
	ts := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "Tuesday May 21, 2019 at 9:30PM", FormatDatetime(ts, "full"))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDatetime(ts, "medium"))
	assert.Equal(t, "2019-05-21", FormatDatetime(ts, "2006-01-02"))
}

func TestRenderLayoutFlashAndErrors(t *testing.T) {
	out := render(t, "pages/home", Page{
		Title:  "Home",
		Flash:  "Venue The Musical Hop was successfully listed!",
		Errors: []string{"name is required", "website has an invalid format"},
	})
	assert.Contains(t, out, "<title>Home | Fyyur</title>")
	assert.Contains(t, out, "Venue The Musical Hop was successfully listed!")
	assert.Contains(t, out, "<li>name is required</li>")
	assert.Contains(t, out, "<li>website has an invalid format</li>")
}

func TestRenderVenueDetail(t *testing.T) {
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	out := render(t, "pages/show_venue", &service.VenueDetail{
		Venue: model.Venue{ID: 1, Name: "The Musical Hop", City: "San Francisco", State: "CA",
			Genres: model.Genres{"Jazz", "Reggae"}, SeekingTalent: true, SeekingDescription: "local artists"},
		UpcomingShows:      []service.ShowEntry{{ID: 4, Name: "Guns N Petals", StartTime: start}},
		UpcomingShowsCount: 1,
		PastShows:          []service.ShowEntry{},
	})
	assert.Contains(t, out, "<h1>The Musical Hop</h1>")
	assert.Contains(t, out, "<span>Reggae</span>")
	assert.Contains(t, out, "local artists")
	assert.Contains(t, out, "1 Upcoming Show<")
	assert.Contains(t, out, `href="/artists/4"`)
	assert.Contains(t, out, "Sunday April 1, 2035 at 8:00PM")
	assert.Contains(t, out, "0 Past Shows")
	assert.Contains(t, out, `data-url="/venues/1"`)
}

func TestRenderEditFormPrefill(t *testing.T) {
	out := render(t, "forms/edit_venue", struct {
		Form form.VenueForm
		ID   uint64
	}{
		Form: form.VenueForm{Name: "Hop & Co", State: "CA", Genres: []string{"Jazz"}, SeekingTalent: true},
		ID:   3,
	})
	assert.Contains(t, out, `action="/venues/3/edit"`)
	assert.Contains(t, out, `value="Hop &amp; Co"`)
	assert.Contains(t, out, `<option value="Jazz" selected>`)
	assert.Contains(t, out, `<option value="Blues">`)
	assert.Contains(t, out, `<option value="CA" selected>`)
	assert.Contains(t, out, "checked")
}

func TestRenderSearchResults(t *testing.T) {
	out := render(t, "pages/search_artists", service.SearchResults{Term: "a", Count: 0})
	assert.Contains(t, out, `Number of search results for "a": 0`)
}
