package moderation

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/metrics"
	"github.com/GraceHarbor/store"
)

// TransitionRequest asks to move record ID from Current to Requested on behalf of Actor.
// Current is the status the caller last read; no version check is made against it.
type TransitionRequest struct {
	ID        int
	Current   lifecycle.Status
	Requested lifecycle.Status
	Actor     int
	Response  *string
}

// Transitioner applies whitelisted status transitions as single store updates.
type Transitioner struct {
	store   store.RecordStore
	metrics *metrics.LifecycleMetrics
	now     func() time.Time
}

func NewTransitioner(s store.RecordStore, m *metrics.LifecycleMetrics) *Transitioner {
	return &Transitioner{store: s, metrics: m, now: time.Now}
}

// Transition validates req against the entity's family, runs the entity guard and
// writes the new status together with its actor and timestamp fields. An illegal
// transition returns *lifecycle.IllegalTransitionError without touching the store.
func (t *Transitioner) Transition(ctx context.Context, e Entity, req TransitionRequest) (lifecycle.Status, error) {
	next, err := e.Family.Attempt(req.Current, req.Requested)
	if err != nil {
		t.metrics.IncRejected(e.Name, "illegal_transition")
		return req.Current, err
	}

	if e.guard != nil {
		if err := e.guard(ctx, t.store, req); err != nil {
			t.metrics.IncRejected(e.Name, "guard")
			return req.Current, err
		}
	}

	now := t.now().UTC()
	rec := goqu.Record{"status": string(next)}
	if e.stamp != nil {
		for col, val := range e.stamp(req, now) {
			rec[col] = val
		}
	}

	if err := t.store.Update(ctx, e.Table, req.ID, rec); err != nil {
		return req.Current, err
	}

	t.metrics.IncTransition(e.Name, string(next))
	return next, nil
}

type statusRow struct {
	ID     int
	Status string
}

// CurrentStatus reads the stored status of one record.
func CurrentStatus(ctx context.Context, s store.RecordStore, e Entity, id int) (lifecycle.Status, error) {
	var row statusRow
	found, err := s.Get(ctx, e.Table, id, &row)
	if err != nil {
		return "", err
	}
	if !found {
		return "", store.ErrNotFound
	}
	return lifecycle.Status(row.Status), nil
}
