package aggregation

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

// LiveStream reports the stream on air now, or failing that the next scheduled
// stream and the countdown to it.
func (a *Aggregator) LiveStream(ctx context.Context) (models.LiveStreamStatus, error) {
	now := a.clock()
	status := models.LiveStreamStatus{Checked: now}

	var live []models.LiveStream
	err := a.store.Select(ctx, store.Query{
		Table: "live_streams",
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusLive)),
			store.WindowContains("start_time", "end_time", now),
		},
		Order: []exp.OrderedExpression{goqu.C("start_time").Desc()},
		Limit: 1,
	}, &live)
	if err != nil {
		return status, err
	}
	for i := range live {
		if lifecycle.IsVisible(live[i].Start_Time, live[i].End_Time, now) {
			status.Is_Live = true
			status.Current = &live[i]
			return status, nil
		}
	}

	var next []models.LiveStream
	err = a.store.Select(ctx, store.Query{
		Table: "live_streams",
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusScheduled)),
			goqu.C("start_time").Gt(now),
		},
		Order: []exp.OrderedExpression{goqu.C("start_time").Asc()},
		Limit: 1,
	}, &next)
	if err != nil {
		return status, err
	}
	if len(next) > 0 && next[0].Start_Time != nil {
		status.Next = &next[0]
		status.Countdown = lifecycle.Countdown(now, *next[0].Start_Time)
	}
	return status, nil
}
