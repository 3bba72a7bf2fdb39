package service

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/repository"
)

// Area is one (city, state) group of the venue listing.
type Area struct {
	City   string
	State  string
	Venues []model.VenueSummary
}

// GroupVenuesByArea partitions venues by city and state.  Every venue ends
// up in exactly one area.  Areas are ordered by state then city, and venues
// inside an area by id.
func GroupVenuesByArea(venues []model.Venue) []Area {
	sorted := slices.Clone(venues)
	slices.SortStableFunc(sorted, func(a, b model.Venue) int {
		return cmp.Or(
			cmp.Compare(a.State, b.State),
			cmp.Compare(a.City, b.City),
			cmp.Compare(a.ID, b.ID),
		)
	})

	areas := []Area{}
	for _, v := range sorted {
		n := len(areas)
		if n == 0 || areas[n-1].City != v.City || areas[n-1].State != v.State {
			areas = append(areas, Area{City: v.City, State: v.State})
			n++
		}
		areas[n-1].Venues = append(areas[n-1].Venues, model.VenueSummary{ID: v.ID, Name: v.Name, ImageLink: v.ImageLink})
	}
	return areas
}

// SearchResults is the outcome of a name search.
type SearchResults struct {
	Term  string
	Count int
	Data  []repository.SearchResult
}

func newSearchResults(term string, rows []repository.SearchResult) SearchResults {
	if rows == nil {
		rows = []repository.SearchResult{}
	}
	return SearchResults{Term: strings.TrimSpace(term), Count: len(rows), Data: rows}
}

// ShowEntry is a show as seen from one side: the counterpart's summary and
// the start time.
type ShowEntry struct {
	ID        uint64
	Name      string
	ImageLink string
	StartTime time.Time
}

// Counterpart selects which side of a show listing a detail page shows.
type Counterpart int

const (
	// ArtistSide lists the artist of each show; used on venue pages.
	ArtistSide Counterpart = iota
	// VenueSide lists the venue of each show; used on artist pages.
	VenueSide
)

// SplitShows partitions listings into shows that started strictly before now
// and shows that start strictly after it.  A show starting exactly at now is
// in neither list.  Input order is preserved.
func SplitShows(listings []model.ShowListing, now time.Time, side Counterpart) (past, upcoming []ShowEntry) {
	past, upcoming = []ShowEntry{}, []ShowEntry{}
	for _, l := range listings {
		e := ShowEntry{StartTime: l.StartTime}
		if side == VenueSide {
			e.ID, e.Name, e.ImageLink = l.Venue.ID, l.Venue.Name, l.Venue.ImageLink
		} else {
			e.ID, e.Name, e.ImageLink = l.Artist.ID, l.Artist.Name, l.Artist.ImageLink
		}
		switch {
		case l.IsPast(now):
			past = append(past, e)
		case l.IsUpcoming(now):
			upcoming = append(upcoming, e)
		}
	}
	return past, upcoming
}

// VenueDetail is the venue page: the record plus its shows split around
// the clock reading taken for the request.
type VenueDetail struct {
	Venue              model.Venue
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	Artist             model.Artist
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}
