package moderation

import (
	"context"
	"sync"

	"github.com/GraceHarbor/store"
)

type updateCall struct {
	Table  string
	ID     int
	Fields interface{}
}

// spyStore records every call and delegates to optional hooks.
type spyStore struct {
	mu      sync.Mutex
	calls   []string
	updates []updateCall

	onSelect func(ctx context.Context, q store.Query, dest interface{}) error
	onCount  func(ctx context.Context, q store.Query) (int64, error)
	onGet    func(ctx context.Context, table string, id int, dest interface{}) (bool, error)
	onUpdate func(ctx context.Context, table string, id int, fields interface{}) error
}

func (s *spyStore) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *spyStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *spyStore) Select(ctx context.Context, q store.Query, dest interface{}) error {
	s.record("select:" + q.Table)
	if s.onSelect != nil {
		return s.onSelect(ctx, q, dest)
	}
	return nil
}

func (s *spyStore) Get(ctx context.Context, table string, id int, dest interface{}) (bool, error) {
	s.record("get:" + table)
	if s.onGet != nil {
		return s.onGet(ctx, table, id, dest)
	}
	return false, nil
}

func (s *spyStore) Count(ctx context.Context, q store.Query) (int64, error) {
	s.record("count:" + q.Table)
	if s.onCount != nil {
		return s.onCount(ctx, q)
	}
	return 0, nil
}

func (s *spyStore) Insert(ctx context.Context, table string, row interface{}) (int, error) {
	s.record("insert:" + table)
	return 1, nil
}

func (s *spyStore) Update(ctx context.Context, table string, id int, fields interface{}) error {
	s.record("update:" + table)
	s.mu.Lock()
	s.updates = append(s.updates, updateCall{Table: table, ID: id, Fields: fields})
	s.mu.Unlock()
	if s.onUpdate != nil {
		return s.onUpdate(ctx, table, id, fields)
	}
	return nil
}

func (s *spyStore) Delete(ctx context.Context, table string, id int) error {
	s.record("delete:" + table)
	return nil
}
