package service

import (
	"context"
	"fmt"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/model"
	"github.com/nikosDal/fyyur-01/internal/queue"
)

// ShowService lists and schedules shows.
type ShowService struct {
	shows ShowStore
	mut   mutation
}

// NewShowService wires a ShowService.  events and clock may be nil.
func NewShowService(shows ShowStore, events EventPublisher, clock Clock) *ShowService {
	return &ShowService{shows: shows, mut: newMutation("show", events, clock)}
}

// List returns every show with both sides, ordered by start time.
func (s *ShowService) List(ctx context.Context) ([]model.ShowListing, error) {
	shows, err := s.shows.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return shows, nil
}

// Create validates f and schedules the show.  A missing artist or venue
// yields repository.ErrArtistNotFound or repository.ErrVenueNotFound.
func (s *ShowService) Create(ctx context.Context, f form.ShowForm) (*model.Show, error) {
	var (
		show model.Show
		err  error
	)
	defer func() { s.mut.finish(ctx, queue.ActionCreated, show.ID, "", err) }()

	if show, err = form.ValidateShow(f); err != nil {
		return nil, err
	}
	if err = persistErr("create show", "", s.shows.Create(ctx, &show)); err != nil {
		return nil, err
	}
	return &show, nil
}
