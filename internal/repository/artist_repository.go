package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nikosDal/fyyur-01/internal/model"
)

const artistColumns = `id, name, city, state, phone, image_link,
	facebook_link, website, genres, seeking_venue, seeking_description`

// ArtistRepo manages persistence for artists.  Like VenueRepo, concurrent
// edits of one artist are last writer wins.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the given DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a                              model.Artist
		facebook, website, description sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &a.ImageLink,
		&facebook, &website, &a.Genres, &a.SeekingVenue, &description); err != nil {
		return nil, err
	}
	a.FacebookLink = facebook.String
	a.Website = website.String
	a.SeekingDescription = description.String
	return &a, nil
}

// Create inserts a and assigns the generated ID.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	const q = `INSERT INTO artists (name, city, state, phone, image_link,
		facebook_link, website, genres, seeking_venue, seeking_description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink,
			nullString(a.FacebookLink), nullString(a.Website), a.Genres, a.SeekingVenue, nullString(a.SeekingDescription))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = uint64(id)
		return nil
	})
}

// GetByID retrieves an artist.  It returns ErrArtistNotFound if there is
// no matching row.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtistNotFound
	}
	return a, err
}

// ListAll returns id, name and image of every artist ordered by id.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.ArtistSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, image_link FROM artists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ArtistSummary
	for rows.Next() {
		var a model.ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.ImageLink); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case,
// with the number of shows starting strictly after now.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string, now time.Time) ([]SearchResult, error) {
	const q = `SELECT a.id, a.name,
		       (SELECT COUNT(*) FROM shows s WHERE s.artist_id = a.id AND s.start_time > ?) AS num_upcoming_shows
		FROM artists a
		WHERE LOWER(a.name) LIKE ?
		ORDER BY a.name, a.id`
	return searchRows(ctx, r.db, q, now.UTC(), containsPattern(term))
}

// Update replaces every column of the artist with id a.ID.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	const q = `UPDATE artists
		SET name = ?, city = ?, state = ?, phone = ?, image_link = ?,
		    facebook_link = ?, website = ?, genres = ?, seeking_venue = ?, seeking_description = ?
		WHERE id = ?`
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "artists", a.ID, ErrArtistNotFound); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, q, a.Name, a.City, a.State, a.Phone, a.ImageLink,
			nullString(a.FacebookLink), nullString(a.Website), a.Genres, a.SeekingVenue, nullString(a.SeekingDescription),
			a.ID)
		return err
	})
}

// Delete removes an artist and its shows.  It returns ErrArtistNotFound
// when the artist does not exist.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := lockRow(ctx, tx, "artists", id, ErrArtistNotFound); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id)
		return err
	})
}
