package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// genreSeparator joins tags in the genres column.  No tag in Genres
// contains it, so the encoding is lossless.
const genreSeparator = ","

// GenreChoices is the closed set of tags accepted for venues and artists,
// in the order they are offered on forms.
var GenreChoices = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

var genreSet = toSet(GenreChoices)

// IsGenre reports whether tag is one of GenreChoices.
func IsGenre(tag string) bool {
	_, ok := genreSet[tag]
	return ok
}

// Genres is an ordered set of genre tags stored as a single comma-joined
// column.
type Genres []string

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	for _, tag := range g {
		if strings.Contains(tag, genreSeparator) {
			return nil, fmt.Errorf("genre %q contains %q", tag, genreSeparator)
		}
	}
	return strings.Join(g, genreSeparator), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Genres", src)
	}
	if raw == "" {
		*g = Genres{}
		return nil
	}
	*g = Genres(strings.Split(raw, genreSeparator))
	return nil
}

// Contains reports whether tag is present.  Templates use it to mark
// selected options.
func (g Genres) Contains(tag string) bool {
	for _, t := range g {
		if t == tag {
			return true
		}
	}
	return false
}

// Dedup returns the tags with repeats removed, keeping first occurrences.
func (g Genres) Dedup() Genres {
	seen := make(map[string]struct{}, len(g))
	out := make(Genres, 0, len(g))
	for _, t := range g {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
