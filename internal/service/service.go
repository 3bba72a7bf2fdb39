// Package service holds the orchestration between validation, storage and
// rendering.  It turns raw form submissions into committed mutations and
// shapes stored rows into the view models the pages display.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nikosDal/fyyur-01/internal/form"
	"github.com/nikosDal/fyyur-01/internal/queue"
	"github.com/nikosDal/fyyur-01/internal/repository"
)

// Clock returns the current time.  Every read that splits shows into past
// and upcoming takes exactly one reading.
type Clock func() time.Time

// SystemClock reads the wall clock in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// Outcome is the terminal state of a create, update or delete.
type Outcome int

const (
	Committed Outcome = iota
	RolledBack
	ValidationFailed
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled_back"
	case ValidationFailed:
		return "validation_failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// OutcomeOf derives the outcome of a mutation from the error it returned.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Committed
	}
	var fe form.Errors
	if errors.As(err, &fe) {
		return ValidationFailed
	}
	return RolledBack
}

// PersistenceError reports a storage failure.  The transaction that hit it
// has been rolled back, so nothing of the mutation is visible.  Subject
// names the record: the submitted name on create, the id otherwise.
type PersistenceError struct {
	Op      string
	Subject string
	Err     error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

// Message is the text shown to the user, e.g. "Failed to list venue The
// Musical Hop!".
func (e *PersistenceError) Message() string {
	verb, entity, _ := strings.Cut(e.Op, " ")
	if verb == "create" {
		verb = "list"
	}
	if e.Subject == "" {
		return "Failed to " + verb + " " + entity + "!"
	}
	return "Failed to " + verb + " " + entity + " " + e.Subject + "!"
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// persistErr wraps a repository failure for op on subject.  Not found errors are
// returned unchanged so callers keep matching them with errors.Is.
func persistErr(op, subject string, err error) error {
	if err == nil || errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Subject: subject, Err: err}
}

// EventPublisher receives an activity event after each committed mutation.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, queue.ActivityEvent) error { return nil }

// mutation bundles what every service needs to finish a write: logging the
// outcome and announcing it.
type mutation struct {
	entity string
	events EventPublisher
	clock  Clock
}

func newMutation(entity string, events EventPublisher, clock Clock) mutation {
	if events == nil {
		events = noopPublisher{}
	}
	if clock == nil {
		clock = SystemClock
	}
	return mutation{entity: entity, events: events, clock: clock}
}

// finish logs the outcome of action and, when it committed, publishes the
// matching activity event.  Publishing is best effort.
func (m mutation) finish(ctx context.Context, action queue.Action, id uint64, name string, err error) {
	outcome := OutcomeOf(err)
	entry := logrus.WithFields(logrus.Fields{
		"entity":  m.entity,
		"action":  string(action),
		"id":      id,
		"outcome": outcome.String(),
	})
	switch outcome {
	case Committed:
		entry.Info("mutation committed")
	case ValidationFailed:
		entry.WithError(err).Warn("submission rejected")
		return
	default:
		if errors.Is(err, repository.ErrNotFound) {
			entry.WithError(err).Warn("mutation target missing")
		} else {
			entry.WithError(err).Error("mutation rolled back")
		}
		return
	}

	ev := queue.NewActivityEvent(action, m.entity, id, name, m.clock())
	if perr := m.events.Publish(ctx, ev); perr != nil {
		entry.WithError(perr).Warn("activity event not published")
	}
}
