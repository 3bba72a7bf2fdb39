package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/queue"
	"github.com/nikosDal/fyyur-01/internal/repository"
)

// VenueStore is the storage VenueService needs.  *repository.VenueRepo
// satisfies it.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	ListLocations(ctx context.Context) ([]model.Venue, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]repository.SearchResult, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
}

// ShowStore is the storage for shows.  *repository.ShowRepo satisfies it.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.ShowListing, error)
	ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error)
	ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error)
}

// VenueService implements the venue pages and mutations.
type VenueService struct {
	venues VenueStore
	shows  ShowStore
	clock  Clock
	mut    mutation
}

// NewVenueService wires a VenueService.  events and clock may be nil.
func NewVenueService(venues VenueStore, shows ShowStore, events EventPublisher, clock Clock) *VenueService {
	m := newMutation("venue", events, clock)
	return &VenueService{venues: venues, shows: shows, clock: m.clock, mut: m}
}

// Areas lists every venue grouped by city and state.
func (s *VenueService) Areas(ctx context.Context) ([]Area, error) {
	venues, err := s.venues.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return GroupVenuesByArea(venues), nil
}

// Search finds venues whose name contains term, ignoring case.
func (s *VenueService) Search(ctx context.Context, term string) (SearchResults, error) {
	rows, err := s.venues.SearchByName(ctx, term, s.clock())
	if err != nil {
		return SearchResults{}, fmt.Errorf("search venues: %w", err)
	}
	return newSearchResults(term, rows), nil
}

// Get returns the stored venue, used to prefill the edit form.
func (s *VenueService) Get(ctx context.Context, id uint64) (*model.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

// Detail assembles the venue page.
func (s *VenueService) Detail(ctx context.Context, id uint64) (*VenueDetail, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	listings, err := s.shows.ListByVenue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list shows of venue %d: %w", id, err)
	}
	past, upcoming := SplitShows(listings, s.clock(), ArtistSide)
	return &VenueDetail{
		Venue:              *v,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create validates f and stores the venue it describes.  A form.Errors is
// returned, and nothing is stored, when validation fails.
func (s *VenueService) Create(ctx context.Context, f form.VenueForm) (*model.Venue, error) {
	var (
		v   model.Venue
		err error
	)
	defer func() { s.mut.finish(ctx, queue.ActionCreated, v.ID, f.Name, err) }()

	if v, err = form.ValidateVenue(f); err != nil {
		return nil, err
	}
	if err = persistErr("create venue", f.Name, s.venues.Create(ctx, &v)); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update replaces every field of venue id with the values of f.
func (s *VenueService) Update(ctx context.Context, id uint64, f form.VenueForm) (*model.Venue, error) {
	var err error
	defer func() { s.mut.finish(ctx, queue.ActionUpdated, id, f.Name, err) }()

	var valid model.Venue
	if valid, err = form.ValidateVenue(f); err != nil {
		return nil, err
	}
	valid.ID = id
	if err = persistErr("update venue", strconv.FormatUint(id, 10), s.venues.Update(ctx, &valid)); err != nil {
		return nil, err
	}
	return &valid, nil
}

// Delete removes venue id together with its shows.
func (s *VenueService) Delete(ctx context.Context, id uint64) error {
	err := persistErr("delete venue", strconv.FormatUint(id, 10), s.venues.Delete(ctx, id))
	s.mut.finish(ctx, queue.ActionDeleted, id, "", err)
	return err
}
