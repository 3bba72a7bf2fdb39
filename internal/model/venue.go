package model

// Venue is a location that can host shows.  It corresponds to a row in the
// `venues` table.  Shows referencing a venue are removed together with it.
//
// Fields:
//  ID                 – primary key identifier, assigned by the database.
//  Name               – display name, searched case-insensitively.
//  City, State        – location; State is one of StateChoices.
//  Address, Phone     – free text contact details.
//  ImageLink          – picture shown on listings.
//  FacebookLink       – optional, empty when not provided.
//  Website            – optional, empty when not provided.
//  Genres             – ordered set of Genre tags, never empty once validated.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – optional pitch shown when SeekingTalent is set.
type Venue struct {
    ID                 uint64 // venues.id
    Name               string // venues.name
    City               string // venues.city
    State              string // venues.state
    Address            string // venues.address
    Phone              string // venues.phone
    ImageLink          string // venues.image_link
    FacebookLink       string // venues.facebook_link
    Website            string // venues.website
    Genres             Genres // venues.genres
    SeekingTalent      bool   // venues.seeking_talent
    SeekingDescription string // venues.seeking_description
}

// VenueSummary is the (id, name) pair used in area listings and show rows.
type VenueSummary struct {
    ID        uint64
    Name      string
    ImageLink string
}
