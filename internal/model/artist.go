package model

// Artist is a performer who can be booked at venues.  It corresponds to a
// row in the `artists` table.
type Artist struct {
    ID                 uint64 // artists.id
    Name               string // artists.name
    City               string // artists.city
    State              string // artists.state
    Phone              string // artists.phone
    ImageLink          string // artists.image_link
    FacebookLink       string // artists.facebook_link
    Website            string // artists.website
    Genres             Genres // artists.genres
    SeekingVenue       bool   // artists.seeking_venue
    SeekingDescription string // artists.seeking_description
}

// ArtistSummary is the (id, name, image) triple shown next to a show.
type ArtistSummary struct {
    ID        uint64
    Name      string
    ImageLink string
}
