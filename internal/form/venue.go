package form

import (
	"net/url"
	"strings"

	"github.com/nikosDal/fyyur-01/internal/model"
)

// VenueForm is the typed payload of the venue create and edit forms.
type VenueForm struct {
	Name               string   `form:"name" validate:"required"`
	City               string   `form:"city" validate:"required"`
	State              string   `form:"state" validate:"required,state"`
	Address            string   `form:"address" validate:"required"`
	Phone              string   `form:"phone"`
	ImageLink          string   `form:"image_link"`
	Genres             []string `form:"genres" validate:"required,min=1,dive,genre"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url"`
	Website            string   `form:"website" validate:"omitempty,url"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

// ParseVenue reads a venue form submission.
func ParseVenue(values url.Values) VenueForm {
	return VenueForm{
		Name:               strings.TrimSpace(values.Get("name")),
		City:               strings.TrimSpace(values.Get("city")),
		State:              strings.TrimSpace(values.Get("state")),
		Address:            strings.TrimSpace(values.Get("address")),
		Phone:              strings.TrimSpace(values.Get("phone")),
		ImageLink:          strings.TrimSpace(values.Get("image_link")),
		Genres:             multi(values["genres"]),
		FacebookLink:       strings.TrimSpace(values.Get("facebook_link")),
		Website:            strings.TrimSpace(values.Get("website")),
		SeekingTalent:      checkbox(values.Get("seeking_talent")),
		SeekingDescription: strings.TrimSpace(values.Get("seeking_description")),
	}
}

// VenueFormFrom fills a form from a stored venue, for edit pages.
func VenueFormFrom(v model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             append([]string(nil), v.Genres...),
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
	}
}

// ValidateVenue checks f and returns the venue it describes.  On failure
// the error is an Errors value listing every problem.  The returned venue
// has no ID; callers assign it for updates.
func ValidateVenue(f VenueForm) (model.Venue, error) {
	if err := check(f); err != nil {
		return model.Venue{}, err
	}
	return model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		Genres:             model.Genres(f.Genres).Dedup(),
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}, nil
}
