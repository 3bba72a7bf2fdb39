package model

import "time"

// Show is a scheduled performance of one artist at one venue.  The same
// artist/venue pair may appear several times with different start times.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – artist performing; the show is deleted with the artist.
//  VenueID   – hosting venue; the show is deleted with the venue.
//  StartTime – when the show begins, stored in UTC.
type Show struct {
    ID        uint64    // shows.id
    ArtistID  uint64    // shows.artist_id
    VenueID   uint64    // shows.venue_id
    StartTime time.Time // shows.start_time
}

// ShowListing is a show annotated with both of its owners.
type ShowListing struct {
    ID        uint64
    StartTime time.Time
    Venue     VenueSummary
    Artist    ArtistSummary
}

// IsUpcoming reports whether the show starts strictly after now.
func (s ShowListing) IsUpcoming(now time.Time) bool {
    return s.StartTime.After(now)
}

// IsPast reports whether the show started strictly before now.  A show
// starting exactly at now is neither past nor upcoming.
func (s ShowListing) IsPast(now time.Time) bool {
    return s.StartTime.Before(now)
}
