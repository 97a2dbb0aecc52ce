package aggregation

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

const newSubscriberDays = 30

type donationAmount struct {
	Current_Amount decimal.Decimal
}

// Overview gathers the dashboard landing page: the latest prayers, a few
// active schedule entries and the headline counts.
func (a *Aggregator) Overview(ctx context.Context) (models.Overview, error) {
	now := a.clock()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	ov := models.Overview{
		Recent_Prayers:    []models.Prayer{},
		Upcoming_Schedule: []models.ChurchSchedule{},
	}

	err := a.store.Select(ctx, store.Query{
		Table: "prayers",
		Order: []exp.OrderedExpression{store.Newest()},
		Limit: 5,
	}, &ov.Recent_Prayers)
	if err != nil {
		return ov, err
	}

	err = a.store.Select(ctx, store.Query{
		Table: "church_schedules",
		Where: []exp.Expression{store.StatusIs(string(lifecycle.StatusActive))},
		Order: []exp.OrderedExpression{goqu.C("start_time").Asc()},
		Limit: 5,
	}, &ov.Upcoming_Schedule)
	if err != nil {
		return ov, err
	}
	lifecycle.SortByWeekday(ov.Upcoming_Schedule, func(s models.ChurchSchedule) string { return s.Day_Of_Week })

	status := func(table string, st lifecycle.Status, extra ...exp.Expression) store.Query {
		return store.Query{Table: table, Where: append([]exp.Expression{store.StatusIs(string(st))}, extra...)}
	}
	counts := []struct {
		dest *int64
		q    store.Query
	}{
		{&ov.Approved_Prayers, status("prayers", lifecycle.StatusApproved)},
		{&ov.Active_Schedules, status("church_schedules", lifecycle.StatusActive)},
		{&ov.Active_Subscribers, status("newsletter_subscriptions", lifecycle.StatusActive)},
		{&ov.New_Subscribers, status("newsletter_subscriptions", lifecycle.StatusActive,
			goqu.C("created_at").Gte(now.AddDate(0, 0, -newSubscriberDays)))},
		{&ov.New_Connection_Cards, status("connection_cards", lifecycle.StatusNew)},
		{&ov.Approved_Meetings, status("meetings", lifecycle.StatusApproved)},
		{&ov.Pending_Tithe_Offerings, status("tithe_offerings", lifecycle.StatusPending)},
	}
	for _, c := range counts {
		n, err := a.store.Count(ctx, c.q)
		if err != nil {
			return ov, err
		}
		*c.dest = n
	}

	var donations []donationAmount
	err = a.store.Select(ctx, status("donations", lifecycle.StatusCompleted,
		goqu.C("created_at").Gte(monthStart)), &donations)
	if err != nil {
		return ov, err
	}
	ov.Monthly_Donations = decimal.Zero
	for _, d := range donations {
		ov.Monthly_Donations = ov.Monthly_Donations.Add(d.Current_Amount)
	}
	return ov, nil
}
