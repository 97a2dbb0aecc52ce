package moderation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/store"
)

// ErrStale is returned by a refresh that was overtaken by a newer one.
var ErrStale = errors.New("superseded by a newer request")

// UnknownStatusError reports a status filter outside the entity's vocabulary.
type UnknownStatusError struct {
	Entity string
	Status lifecycle.Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("%s has no status %q", e.Entity, e.Status)
}

// FetchQueue returns a pointer to the slice of records with the given status in
// the entity's natural order. An empty status returns every record.
func FetchQueue(ctx context.Context, s store.RecordStore, e Entity, status lifecycle.Status) (interface{}, error) {
	q := store.Query{Table: e.Table, Order: e.Order}
	if status != "" {
		if !e.Family.Contains(status) {
			return nil, &UnknownStatusError{Entity: e.Name, Status: status}
		}
		q.Where = []exp.Expression{store.StatusIs(string(status))}
	}

	list := e.NewList()
	if err := s.Select(ctx, q, list); err != nil {
		return nil, err
	}
	if e.attach != nil {
		if err := e.attach(ctx, s, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// View is the queue of one entity as seen by one staff member: its own status
// filter and the last committed result. Each refresh cancels the one in flight
// and only the newest refresh may commit.
type View struct {
	entity Entity

	mu      sync.Mutex
	filter  lifecycle.Status
	gen     uint64
	cancel  context.CancelFunc
	items   interface{}
	loading bool
}

func NewView(e Entity) *View {
	return &View{entity: e}
}

// SetFilter changes the status filter and refreshes with it.
func (v *View) SetFilter(ctx context.Context, s store.RecordStore, status lifecycle.Status) (interface{}, error) {
	if status != "" && !v.entity.Family.Contains(status) {
		return nil, &UnknownStatusError{Entity: v.entity.Name, Status: status}
	}
	return v.refresh(ctx, s, &status)
}

// Refresh re-reads the queue for the current filter.
func (v *View) Refresh(ctx context.Context, s store.RecordStore) (interface{}, error) {
	return v.refresh(ctx, s, nil)
}

// refresh switches the filter, when given, in the same critical section that
// claims the generation, so the rows returned always match the filter set.
func (v *View) refresh(ctx context.Context, s store.RecordStore, status *lifecycle.Status) (interface{}, error) {
	v.mu.Lock()
	if status != nil {
		v.filter = *status
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.gen++
	gen := v.gen
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	filter := v.filter
	v.loading = true
	v.mu.Unlock()

	items, err := FetchQueue(ctx, s, v.entity, filter)

	v.mu.Lock()
	defer v.mu.Unlock()
	cancel()
	if gen != v.gen {
		return nil, ErrStale
	}
	v.cancel = nil
	v.loading = false
	if err != nil {
		return nil, err
	}
	v.items = items
	return items, nil
}

func (v *View) Filter() lifecycle.Status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

func (v *View) Items() interface{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Board holds one View per entity so filters never leak between queues.
type Board struct {
	mu    sync.Mutex
	views map[string]*View
}

func NewBoard() *Board {
	return &Board{views: map[string]*View{}}
}

func (b *Board) View(e Entity) *View {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.views[e.Name]
	if !ok {
		v = NewView(e)
		b.views[e.Name] = v
	}
	return v
}
