package aggregation

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

func wallPredicate() []exp.Expression {
	return []exp.Expression{
		goqu.C("is_public").IsTrue(),
		goqu.C("show_on_wall").IsTrue(),
		store.StatusIs(string(lifecycle.StatusApproved)),
	}
}

// OnWall reports whether a prayer belongs on the public prayer wall.
func OnWall(p models.Prayer) bool {
	return p.Is_Public && p.Show_On_Wall && p.Status == lifecycle.StatusApproved
}

// PrayerWall lists approved public prayers, newest first.
func (a *Aggregator) PrayerWall(ctx context.Context) ([]models.Prayer, error) {
	rows := []models.Prayer{}
	err := a.store.Select(ctx, store.Query{
		Table: "prayers",
		Where: wallPredicate(),
		Order: []exp.OrderedExpression{store.Newest()},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return filter(rows, OnWall), nil
}

// WallStats counts prayers offered since UTC midnight, wall prayers, distinct
// prayer warriors and answered prayers.
func (a *Aggregator) WallStats(ctx context.Context) (models.PrayerWallStats, error) {
	var stats models.PrayerWallStats
	now := a.clock()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dest *int64
		q    store.Query
	}{
		{&stats.Prayed_Today, store.Query{
			Table: "prayer_interactions",
			Where: []exp.Expression{goqu.C("created_at").Gte(midnight)},
		}},
		{&stats.Total_Prayers, store.Query{
			Table: "prayers",
			Where: []exp.Expression{goqu.C("is_public").IsTrue(), goqu.C("show_on_wall").IsTrue()},
		}},
		{&stats.Prayer_Warriors, store.Query{Table: "prayer_interactions", Distinct: "user_id"}},
		{&stats.Answered, store.Query{
			Table: "prayers",
			Where: []exp.Expression{store.StatusIs(string(lifecycle.StatusCompleted))},
		}},
	}

	for _, c := range counts {
		n, err := a.store.Count(ctx, c.q)
		if err != nil {
			return stats, err
		}
		*c.dest = n
	}
	return stats, nil
}
