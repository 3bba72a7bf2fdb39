// Package repository defines the MySQL data access layer and the error
// values shared across repositories.  Handlers and services distinguish
// failure scenarios with errors.Is against these sentinels.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a requested record does not exist.  The
// entity specific errors below wrap it, so errors.Is(err, ErrNotFound)
// holds for all of them.  Handlers should translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

var (
	// ErrVenueNotFound is returned when a venue id has no row.
	ErrVenueNotFound = fmt.Errorf("venue %w", ErrNotFound)
	// ErrArtistNotFound is returned when an artist id has no row.
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
)

// MySQL error 1452: cannot add or update a child row, a foreign key
// constraint fails.
const errNoReferencedRow = 1452

func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errNoReferencedRow
}
