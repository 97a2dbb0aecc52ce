package store

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// StatusIs filters on the status column.
func StatusIs(status string) exp.Expression {
	return goqu.C("status").Eq(status)
}

// WindowContains keeps rows whose [startCol, endCol] window contains now.
// NULL bounds are open; inverted windows never match.
func WindowContains(startCol, endCol string, now time.Time) exp.Expression {
	start, end := goqu.C(startCol), goqu.C(endCol)
	return goqu.And(
		goqu.Or(start.IsNull(), start.Lte(now)),
		goqu.Or(end.IsNull(), end.Gte(now)),
		goqu.Or(start.IsNull(), end.IsNull(), end.Gte(start)),
	)
}

// Newest orders by created_at descending.
func Newest() exp.OrderedExpression {
	return goqu.C("created_at").Desc()
}
