package form

import (
	"net/url"
	"strings"

	"github.com/nikosDal/fyyur-01/internal/model"
)

// ArtistForm is the typed payload of the artist create and edit forms.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required,state"`
	Phone              string   `form:"phone"`
	ImageLink          string   `form:"image_link"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	Website            string   `form:"website" validate:"omitempty,url"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

// ParseArtist reads an artist form submission.
func ParseArtist(values url.Values) ArtistForm {
	return ArtistForm{
		Name:               strings.TrimSpace(values.Get("name")),
		City:               strings.TrimSpace(values.Get("city")),
		State:              strings.TrimSpace(values.Get("state")),
		Phone:              strings.TrimSpace(values.Get("phone")),
		ImageLink:          strings.TrimSpace(values.Get("image_link")),
		Genres:             multi(values["genres"]),
		FacebookLink:       strings.TrimSpace(values.Get("facebook_link")),
		Website:            strings.TrimSpace(values.Get("website")),
		SeekingVenue:       checkbox(values.Get("seeking_venue")),
		SeekingDescription: strings.TrimSpace(values.Get("seeking_description")),
	}
}

// ArtistFormFrom fills a form from a stored artist.
func ArtistFormFrom(a model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             append([]string(nil), a.Genres...),
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
	}
}

// ValidateArtist checks f and returns the artist it describes.
func ValidateArtist(f ArtistForm) (model.Artist, error) {
	if err := check(f); err != nil {
		return model.Artist{}, err
	}
	return model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             model.Genres(f.Genres).Dedup(),
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}, nil
}
