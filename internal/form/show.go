package form

import (
	"net/url"
	"strings"

	"github.com/nikosDal/fyyur-01/internal/model"
)

// ShowForm is the typed payload of the show scheduling form.
type ShowForm struct {
	ArtistID  string `form:"artist_id" validate:"required,id"`
	VenueID   string `form:"venue_id" validate:"required,id"`
	StartTime string `form:"start_time" validate:"required,starttime"`
}

// ParseShow reads a show form submission.
func ParseShow(values url.Values) ShowForm {
	return ShowForm{
		ArtistID:  strings.TrimSpace(values.Get("artist_id")),
		VenueID:   strings.TrimSpace(values.Get("venue_id")),
		StartTime: strings.TrimSpace(values.Get("start_time")),
	}
}

// ValidateShow checks f and returns the show it describes.  Whether the
// artist and venue exist is decided when the show is stored.
func ValidateShow(f ShowForm) (model.Show, error) {
	if err := check(f); err != nil {
		return model.Show{}, err
	}
	artistID, _ := parseID(f.ArtistID)
	venueID, _ := parseID(f.VenueID)
	start, _ := ParseStartTime(f.StartTime)
	return model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}
