package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

// ErrNotFound is returned when an update or delete matched no row.
var ErrNotFound = errors.New("record not found")

// Query is a select against one table: equality/range predicates, a single
// ordering and an optional limit. Distinct only applies to Count.
type Query struct {
	Table    string
	Where    []exp.Expression
	Order    []exp.OrderedExpression
	Limit    uint
	Distinct string
}

// RecordStore is the generic persistence collaborator every lifecycle
// component talks to.
type RecordStore interface {
	Select(ctx context.Context, q Query, dest interface{}) error
	Get(ctx context.Context, table string, id int, dest interface{}) (bool, error)
	Count(ctx context.Context, q Query) (int64, error)
	Insert(ctx context.Context, table string, row interface{}) (int, error)
	Update(ctx context.Context, table string, id int, fields interface{}) error
	Delete(ctx context.Context, table string, id int) error
}

type goquStore struct {
	db *goqu.Database
}

// New returns a RecordStore backed by a goqu database.
func New(db *goqu.Database) RecordStore {
	return &goquStore{db: db}
}

func (s *goquStore) dataset(q Query) *goqu.SelectDataset {
	ds := s.db.From(q.Table)
	if len(q.Where) > 0 {
		ds = ds.Where(q.Where...)
	}
	if len(q.Order) > 0 {
		ds = ds.Order(q.Order...)
	}
	if q.Limit > 0 {
		ds = ds.Limit(q.Limit)
	}
	return ds
}

func (s *goquStore) Select(ctx context.Context, q Query, dest interface{}) error {
	if err := s.dataset(q).ScanStructsContext(ctx, dest); err != nil {
		return fmt.Errorf("select %s: %w", q.Table, err)
	}
	return nil
}

func (s *goquStore) Get(ctx context.Context, table string, id int, dest interface{}) (bool, error) {
	found, err := s.db.From(table).Where(goqu.C("id").Eq(id)).ScanStructContext(ctx, dest)
	if err != nil {
		return false, fmt.Errorf("get %s %d: %w", table, id, err)
	}
	return found, nil
}

func (s *goquStore) Count(ctx context.Context, q Query) (int64, error) {
	q.Order, q.Limit = nil, 0
	var (
		n   int64
		err error
	)
	if q.Distinct != "" {
		_, err = s.dataset(q).Select(goqu.COUNT(goqu.DISTINCT(q.Distinct)).As("count")).ScanValContext(ctx, &n)
	} else {
		n, err = s.dataset(q).CountContext(ctx)
	}
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", q.Table, err)
	}
	return n, nil
}

func (s *goquStore) Insert(ctx context.Context, table string, row interface{}) (int, error) {
	var id int
	if _, err := s.db.Insert(table).Rows(row).Returning("id").Executor().ScanValContext(ctx, &id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return id, nil
}

func (s *goquStore) Update(ctx context.Context, table string, id int, fields interface{}) error {
	res, err := s.db.Update(table).Set(fields).Where(goqu.C("id").Eq(id)).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", table, id, err)
	}
	return requireRow(res.RowsAffected())
}

func (s *goquStore) Delete(ctx context.Context, table string, id int) error {
	res, err := s.db.Delete(table).Where(goqu.C("id").Eq(id)).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return requireRow(res.RowsAffected())
}

func requireRow(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
