package lifecycle

import (
	"fmt"
	"sort"
	"strings"
)

// Status is a lifecycle state stored in a record's status column.
type Status string

// Moderation family (prayer requests, donations, meetings).
const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Publication family (announcements, events, fundraising campaigns).
const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusCancelled Status = "cancelled"
)

// Simple flag family (connection cards, contact submissions, live streams).
const (
	StatusNew        Status = "new"
	StatusContacted  Status = "contacted"
	StatusInProgress Status = "in_progress"
	StatusScheduled  Status = "scheduled"
	StatusLive       Status = "live"
	StatusEnded      Status = "ended"
)

// Verification family (tithe and offering collections).
const (
	StatusVerified  Status = "verified"
	StatusFinalized Status = "finalized"
)

// Newsletter subscriptions and activation-only content.
const (
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusUnsubscribed Status = "unsubscribed"
)

// ParseStatus normalises user input into a Status.
func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Family is a closed forward-only automaton over a fixed status vocabulary.
type Family struct {
	Name    string
	Initial Status
	edges   map[Status][]Status
}

// NewFamily builds a family from its allowed-transition table. Every status that
// appears as a source or target becomes part of the vocabulary.
func NewFamily(name string, initial Status, edges map[Status][]Status) Family {
	return Family{Name: name, Initial: initial, edges: edges}
}

var (
	// Moderation: pending -> approved -> completed, pending -> rejected.
	Moderation = NewFamily("moderation", StatusPending, map[Status][]Status{
		StatusPending:  {StatusApproved, StatusRejected},
		StatusApproved: {StatusCompleted},
	})

	// AnnouncementPublication: draft -> published -> archived.
	AnnouncementPublication = NewFamily("announcement", StatusDraft, map[Status][]Status{
		StatusDraft:     {StatusPublished},
		StatusPublished: {StatusArchived},
	})

	// EventPublication covers events and fundraising campaigns.
	EventPublication = NewFamily("event", StatusDraft, map[Status][]Status{
		StatusDraft:     {StatusPublished},
		StatusPublished: {StatusCancelled, StatusCompleted},
	})

	ConnectionCardFlow = NewFamily("connection_card", StatusNew, map[Status][]Status{
		StatusNew:       {StatusContacted},
		StatusContacted: {StatusCompleted},
	})

	// ContactFlow lets staff archive from any non-terminal state.
	ContactFlow = NewFamily("contact_submission", StatusNew, map[Status][]Status{
		StatusNew:        {StatusInProgress, StatusArchived},
		StatusInProgress: {StatusCompleted, StatusArchived},
	})

	LiveStreamFlow = NewFamily("live_stream", StatusScheduled, map[Status][]Status{
		StatusScheduled: {StatusLive, StatusCancelled},
		StatusLive:      {StatusEnded, StatusCancelled},
	})

	// TitheFlow: pending -> verified -> finalized. Reaching either target is
	// additionally gated on the verification threshold by the moderation package.
	TitheFlow = NewFamily("tithe_offering", StatusPending, map[Status][]Status{
		StatusPending:  {StatusVerified},
		StatusVerified: {StatusFinalized},
	})

	NewsletterFlow = NewFamily("newsletter", StatusActive, map[Status][]Status{
		StatusActive: {StatusUnsubscribed},
	})
)

// Activation is the vocabulary of content that is toggled by its edit form
// (devotionals, scriptures, schedules, resources) rather than moved through a family.
var Activation = []Status{StatusActive, StatusInactive}

// IllegalTransitionError reports a transition that is not in the family's table.
type IllegalTransitionError struct {
	Family    string
	From      Status
	Requested Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %q to %q", e.Family, e.From, e.Requested)
}

// Attempt returns the requested status when current -> requested is allowed.
func (f Family) Attempt(current, requested Status) (Status, error) {
	for _, next := range f.edges[current] {
		if next == requested {
			return next, nil
		}
	}
	return current, &IllegalTransitionError{Family: f.Name, From: current, Requested: requested}
}

// Allowed lists the statuses reachable from current in one step.
func (f Family) Allowed(current Status) []Status {
	out := make([]Status, len(f.edges[current]))
	copy(out, f.edges[current])
	return out
}

// IsTerminal reports whether no transition leaves s.
func (f Family) IsTerminal(s Status) bool {
	return len(f.edges[s]) == 0
}

// Contains reports whether s belongs to the family's vocabulary.
func (f Family) Contains(s Status) bool {
	if s == f.Initial {
		return true
	}
	for from, targets := range f.edges {
		if from == s {
			return true
		}
		for _, t := range targets {
			if t == s {
				return true
			}
		}
	}
	return false
}

// Vocabulary returns every status of the family in sorted order.
func (f Family) Vocabulary() []Status {
	seen := map[Status]bool{f.Initial: true}
	for from, targets := range f.edges {
		seen[from] = true
		for _, t := range targets {
			seen[t] = true
		}
	}
	out := make([]Status, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsActivation reports whether s is a valid activation status.
func IsActivation(s Status) bool {
	for _, a := range Activation {
		if a == s {
			return true
		}
	}
	return false
}
