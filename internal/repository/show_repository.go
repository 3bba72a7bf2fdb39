package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nikosDal/fyyur-01/internal/model"
)

const showListingSelect = `SELECT s.id, s.start_time,
		v.id, v.name, v.image_link,
		a.id, a.name, a.image_link
	FROM shows s
	JOIN venues v  ON v.id = s.venue_id
	JOIN artists a ON a.id = s.artist_id`

// ShowRepo manages persistence for shows.  Shows are never updated; they
// disappear when their venue or artist is deleted.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts s after checking, in the same transaction, that its
// artist and venue exist.  Both parents stay locked until commit so a
// concurrent delete cannot orphan the new show.  ErrArtistNotFound or
// ErrVenueNotFound is returned for a missing parent.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "artists", s.ArtistID, ErrArtistNotFound); err != nil {
			return err
		}
		if err := lockRow(ctx, tx, "venues", s.VenueID, ErrVenueNotFound); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, q, s.ArtistID, s.VenueID, s.StartTime.UTC())
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("show references a missing row: %w", ErrNotFound)
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
}

// ListAll returns every show with its venue and artist, ordered by start
// time.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.ShowListing, error) {
	return r.list(ctx, showListingSelect+` ORDER BY s.start_time, s.id`)
}

// ListByVenue returns the shows hosted by one venue, ordered by start time.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, showListingSelect+` WHERE s.venue_id = ? ORDER BY s.start_time, s.id`, venueID)
}

// ListByArtist returns the shows of one artist, ordered by start time.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.ShowListing, error) {
	return r.list(ctx, showListingSelect+` WHERE s.artist_id = ? ORDER BY s.start_time, s.id`, artistID)
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.ShowListing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ShowListing
	for rows.Next() {
		var s model.ShowListing
		if err := rows.Scan(&s.ID, &s.StartTime,
			&s.Venue.ID, &s.Venue.Name, &s.Venue.ImageLink,
			&s.Artist.ID, &s.Artist.Name, &s.Artist.ImageLink); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
