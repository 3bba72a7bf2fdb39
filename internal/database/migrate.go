package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the three tables.  Shows reference both parents with
// ON DELETE CASCADE so removing a venue or an artist never leaves orphans.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               CHAR(2)      NOT NULL,
		address             VARCHAR(120) NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(500) NULL,
		website             VARCHAR(500) NULL,
		genres              VARCHAR(500) NOT NULL,
		seeking_talent      BOOLEAN      NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NULL,
		PRIMARY KEY (id),
		KEY idx_venues_area (state, city)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               CHAR(2)      NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(500) NULL,
		website             VARCHAR(500) NULL,
		genres              VARCHAR(500) NOT NULL,
		seeking_venue       BOOLEAN      NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		artist_id  BIGINT UNSIGNED NOT NULL,
		venue_id   BIGINT UNSIGNED NOT NULL,
		start_time DATETIME        NOT NULL,
		PRIMARY KEY (id),
		KEY idx_shows_venue_start (venue_id, start_time),
		KEY idx_shows_artist_start (artist_id, start_time),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies Schema.  Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
