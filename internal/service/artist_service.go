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

// ArtistStore is the storage ArtistService needs.  *repository.ArtistRepo
// satisfies it.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]model.ArtistSummary, error)
	SearchByName(ctx context.Context, term string, now time.Time) ([]repository.SearchResult, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) error
}

// ArtistService implements the artist pages and mutations.
type ArtistService struct {
	artists ArtistStore
	shows   ShowStore
	clock   Clock
	mut     mutation
}

// NewArtistService wires an ArtistService.  events and clock may be nil.
func NewArtistService(artists ArtistStore, shows ShowStore, events EventPublisher, clock Clock) *ArtistService {
	m := newMutation("artist", events, clock)
	return &ArtistService{artists: artists, shows: shows, clock: m.clock, mut: m}
}

// List returns every artist ordered by id.
func (s *ArtistService) List(ctx context.Context) ([]model.ArtistSummary, error) {
	artists, err := s.artists.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// Search finds artists whose name contains term, ignoring case.
func (s *ArtistService) Search(ctx context.Context, term string) (SearchResults, error) {
	rows, err := s.artists.SearchByName(ctx, term, s.clock())
	if err != nil {
		return SearchResults{}, fmt.Errorf("search artists: %w", err)
	}
	return newSearchResults(term, rows), nil
}

// Get returns the stored artist.
func (s *ArtistService) Get(ctx context.Context, id uint64) (*model.Artist, error) {
	return s.artists.GetByID(ctx, id)
}

// Detail assembles the artist page.
func (s *ArtistService) Detail(ctx context.Context, id uint64) (*ArtistDetail, error) {
	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	listings, err := s.shows.ListByArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list shows of artist %d: %w", id, err)
	}
	past, upcoming := SplitShows(listings, s.clock(), VenueSide)
	return &ArtistDetail{
		Artist:             *a,
		PastShows:          past,
		UpcomingShows:      upcoming,
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

// Create validates f and stores the artist it describes.
func (s *ArtistService) Create(ctx context.Context, f form.ArtistForm) (*model.Artist, error) {
	var (
		a   model.Artist
		err error
	)
	defer func() { s.mut.finish(ctx, queue.ActionCreated, a.ID, f.Name, err) }()

	if a, err = form.ValidateArtist(f); err != nil {
		return nil, err
	}
	if err = persistErr("create artist", f.Name, s.artists.Create(ctx, &a)); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces every field of artist id with the values of f.
func (s *ArtistService) Update(ctx context.Context, id uint64, f form.ArtistForm) (*model.Artist, error) {
	var err error
	defer func() { s.mut.finish(ctx, queue.ActionUpdated, id, f.Name, err) }()

	var a model.Artist
	if a, err = form.ValidateArtist(f); err != nil {
		return nil, err
	}
	a.ID = id
	if err = persistErr("update artist", strconv.FormatUint(id, 10), s.artists.Update(ctx, &a)); err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes artist id together with its shows.
func (s *ArtistService) Delete(ctx context.Context, id uint64) error {
	err := persistErr("delete artist", strconv.FormatUint(id, 10), s.artists.Delete(ctx, id))
	s.mut.finish(ctx, queue.ActionDeleted, id, "", err)
	return err
}
