// AngelaMos | 2026
// machine.go

// Package moderation owns the draft/pending/published lifecycle shared by
// every moderated content family. It is storage-agnostic: repositories hand
// it a Moderatable, it mutates the in-memory fields, and the caller persists
// the result.
package moderation

import (
	"fmt"
	"time"

	"github.com/carterperez-dev/pitchside/internal/core"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("parse status %q: %w", s, core.ErrInvalidInput)
	}
	return status, nil
}

// Actor is the minimal identity required to drive a transition.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// Moderatable is implemented by both content families so the transition
// logic is written once.
type Moderatable interface {
	CurrentStatus() Status
	SetStatus(Status)
	SetModeration(actorID string, at time.Time)
	SetPublishedAt(at *time.Time)
}

var allowed = map[Status][]Status{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusPublished, StatusDraft},
	StatusPublished: {StatusDraft},
}

// CanTransition reports whether from -> to is a legal edge. A transition to
// the current status is legal and treated as a no-op by Apply, so a
// double-submitted approval does not error.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("transition to %q: %w", to, core.ErrInvalidInput)
	}

	if from == to {
		return nil
	}

	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}

	return fmt.Errorf(
		"transition %s -> %s: %w",
		from, to, core.ErrInvalidTransition,
	)
}

// Result describes what Apply did, so callers can skip the write on a no-op.
type Result struct {
	Changed bool
	From    Status
	To      Status
}

// Apply validates authorization and the transition edge, then mutates the
// item. Publishing stamps the moderation decision and the publish time.
// Rejection and unpublish keep the prior decision as an audit trail and
// clear the publish time. Submitting to pending touches neither.
func Apply(item Moderatable, to Status, actor Actor, now time.Time) (Result, error) {
	if !actor.IsAdmin() {
		return Result{}, fmt.Errorf("moderate: %w", core.ErrForbidden)
	}

	from := item.CurrentStatus()

	if err := CanTransition(from, to); err != nil {
		return Result{}, err
	}

	if from == to {
		return Result{Changed: false, From: from, To: to}, nil
	}

	item.SetStatus(to)

	switch to {
	case StatusPublished:
		item.SetModeration(actor.ID, now)
		item.SetPublishedAt(&now)
	case StatusDraft:
		// Rejection is itself a moderation decision; record who made it.
		item.SetModeration(actor.ID, now)
		item.SetPublishedAt(nil)
	case StatusPending:
	}

	return Result{Changed: true, From: from, To: to}, nil
}
