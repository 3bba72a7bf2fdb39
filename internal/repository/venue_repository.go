package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nikosDal/fyyur-01/internal/model"
)

const venueColumns = `id, name, city, state, address, phone, image_link,
	facebook_link, website, genres, seeking_talent, seeking_description`

// VenueRepo encapsulates all database queries related to venues.
//
// Updates and deletes run in their own transaction and overwrite whatever
// is stored; two concurrent edits of the same venue resolve as last writer
// wins.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var (
		v                              model.Venue
		facebook, website, description sql.NullString
	)
	if err := row.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&facebook, &website, &v.Genres, &v.SeekingTalent, &description); err != nil {
		return nil, err
	}
	v.FacebookLink = facebook.String
	v.Website = website.String
	v.SeekingDescription = description.String
	return &v, nil
}

// Create inserts v and populates v.ID with the generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link,
		facebook_link, website, genres, seeking_talent, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			nullString(v.FacebookLink), nullString(v.Website), v.Genres, v.SeekingTalent, nullString(v.SeekingDescription))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = uint64(id)
		return nil
	})
}

// GetByID fetches a venue.  It returns ErrVenueNotFound if no row exists.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := scanVenue(r.db.QueryRowContext(ctx, "SELECT "+venueColumns+" FROM venues WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	return v, err
}

// ListLocations returns id, name, city and state of every venue ordered by
// state, city and id.
func (r *VenueRepo) ListLocations(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT id, name, city, state FROM venues ORDER BY state, city, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns venues whose name contains term, ignoring case,
// with the number of shows starting strictly after now.
func (r *VenueRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]SearchResult, error) {
	const q = `SELECT v.id, v.name,
		       (SELECT COUNT(*) FROM shows s WHERE s.venue_id = v.id AND s.start_time > ?) AS num_upcoming_shows
		FROM venues v
		WHERE LOWER(v.name) LIKE ?
		ORDER BY v.name, v.id`
	return searchRows(ctx, r.db, q, now.UTC(), containsPattern(term))
}

func searchRows(ctx context.Context, db *sql.DB, q string, args ...any) ([]SearchResult, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SearchResult{}
	for rows.Next() {
		var s SearchResult
		if err := rows.Scan(&s.ID, &s.Name, &s.NumUpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces every column of the venue with id v.ID.  It returns
// ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
		SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
		    facebook_link = ?, website = ?, genres = ?, seeking_talent = ?, seeking_description = ?
		WHERE id = ?`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "venues", v.ID, ErrVenueNotFound); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			nullString(v.FacebookLink), nullString(v.Website), v.Genres, v.SeekingTalent, nullString(v.SeekingDescription),
			v.ID)
		return err
	})
}

// Delete removes a venue and all of its shows in one transaction.  It
// returns ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "venues", id, ErrVenueNotFound); err != nil {
			return err
		}
		// The foreign key cascades as well; deleting explicitly keeps the
		// invariant on engines where FK checks are switched off.
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
		return err
	})
}
