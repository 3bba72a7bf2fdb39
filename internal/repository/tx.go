package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// inTx runs fn inside one transaction.  The transaction is committed when
// fn returns nil and rolled back otherwise, so no partial write of a
// failed mutation is ever visible.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit: %w", cErr)
		}
	}()
	return fn(tx)
}

// lockRow checks that the row with id exists in table and locks it for the
// rest of the transaction.  It returns notFound when there is no such row.
func lockRow(ctx context.Context, tx *sql.Tx, table string, id uint64, notFound error) error {
	var got uint64
	err := tx.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE id = ? FOR UPDATE", id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// SearchResult is one row of a name search.
type SearchResult struct {
	ID               uint64
	Name             string
	NumUpcomingShows int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, case
// insensitively when compared against LOWER(column).  An empty term
// matches every row.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
