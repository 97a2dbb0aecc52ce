// Package aggregation selects what the public site shows: the singleton
// slots (banner, scripture of the week, devotional of the day) and the
// public collections (announcements, events, prayer wall, schedules,
// fundraising, resources, live stream).
package aggregation

import (
	"context"
	"sort"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/shopspring/decimal"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

// Aggregator reads public content from a record store as of a wall-clock instant.
type Aggregator struct {
	store store.RecordStore
	now   func() time.Time
}

func New(s store.RecordStore) *Aggregator {
	return &Aggregator{store: s, now: time.Now}
}

func (a *Aggregator) clock() time.Time {
	return a.now().UTC()
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Banner returns the published banner announcement with the highest priority
// whose window contains now. Equal priorities keep store order. Nil when none.
func (a *Aggregator) Banner(ctx context.Context) (*models.Announcement, error) {
	now := a.clock()
	var rows []models.Announcement
	err := a.store.Select(ctx, store.Query{
		Table: "announcements",
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusPublished)),
			goqu.C("show_in_banner").IsTrue(),
			store.WindowContains("start_date", "end_date", now),
		},
	}, &rows)
	if err != nil {
		return nil, err
	}

	rows = filter(rows, func(r models.Announcement) bool {
		return r.Show_In_Banner && lifecycle.IsVisible(r.Start_Date, r.End_Date, now)
	})
	if len(rows) == 0 {
		return nil, nil
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Priority > rows[j].Priority })
	return &rows[0], nil
}

// Announcements lists every published announcement currently in its window.
func (a *Aggregator) Announcements(ctx context.Context) ([]models.Announcement, error) {
	now := a.clock()
	rows := []models.Announcement{}
	err := a.store.Select(ctx, store.Query{
		Table: "announcements",
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusPublished)),
			store.WindowContains("start_date", "end_date", now),
		},
		Order: []exp.OrderedExpression{goqu.C("priority").Desc(), store.Newest()},
	}, &rows)
	if err != nil {
		return nil, err
	}
	return filter(rows, func(r models.Announcement) bool {
		return lifecycle.IsVisible(r.Start_Date, r.End_Date, now)
	}), nil
}

// CurrentScripture is the scripture of the week: the newest active scripture
// whose window contains now.
func (a *Aggregator) CurrentScripture(ctx context.Context) (*models.Scripture, error) {
	now := a.clock()
	var rows []models.Scripture
	if err := a.store.Select(ctx, activeInWindow("scriptures", now), &rows); err != nil {
		return nil, err
	}
	rows = filter(rows, func(r models.Scripture) bool {
		return lifecycle.IsVisible(r.Start_Date, r.End_Date, now)
	})
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CurrentDevotional is the devotional of the day, chosen like CurrentScripture.
func (a *Aggregator) CurrentDevotional(ctx context.Context) (*models.Devotional, error) {
	now := a.clock()
	var rows []models.Devotional
	if err := a.store.Select(ctx, activeInWindow("devotionals", now), &rows); err != nil {
		return nil, err
	}
	rows = filter(rows, func(r models.Devotional) bool {
		return lifecycle.IsVisible(r.Start_Date, r.End_Date, now)
	})
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Devotionals is the archive: every active devotional, newest first, whether or
// not its window is still open.
func (a *Aggregator) Devotionals(ctx context.Context) ([]models.Devotional, error) {
	rows := []models.Devotional{}
	err := a.store.Select(ctx, store.Query{
		Table: "devotionals",
		Where: []exp.Expression{store.StatusIs(string(lifecycle.StatusActive))},
		Order: []exp.OrderedExpression{store.Newest()},
	}, &rows)
	return rows, err
}

func activeInWindow(table string, now time.Time) store.Query {
	return store.Query{
		Table: table,
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusActive)),
			store.WindowContains("start_date", "end_date", now),
		},
		Order: []exp.OrderedExpression{store.Newest()},
	}
}

// Events returns published events that are not over yet, split into the
// featured and regular tiers, each ordered by start date.
func (a *Aggregator) Events(ctx context.Context) (models.EventTiers, error) {
	now := a.clock()
	tiers := models.EventTiers{Featured: []models.Event{}, Regular: []models.Event{}}

	var rows []models.Event
	err := a.store.Select(ctx, store.Query{
		Table: "events",
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusPublished)),
			goqu.Or(
				goqu.C("end_date").Gte(now),
				goqu.And(goqu.C("end_date").IsNull(), goqu.C("start_date").Gte(now)),
			),
		},
		Order: []exp.OrderedExpression{goqu.C("start_date").Asc()},
	}, &rows)
	if err != nil {
		return tiers, err
	}

	for _, ev := range rows {
		if !eventUpcoming(ev, now) {
			continue
		}
		if ev.Is_Featured {
			tiers.Featured = append(tiers.Featured, ev)
		} else {
			tiers.Regular = append(tiers.Regular, ev)
		}
	}
	return tiers, nil
}

func eventUpcoming(ev models.Event, now time.Time) bool {
	if ev.End_Date != nil {
		return !now.After(*ev.End_Date) && !ev.End_Date.Before(ev.Start_Date)
	}
	return !now.After(ev.Start_Date)
}

// ActiveSchedules lists active schedule entries Sunday first, then by start time.
func (a *Aggregator) ActiveSchedules(ctx context.Context) ([]models.ChurchSchedule, error) {
	rows := []models.ChurchSchedule{}
	err := a.store.Select(ctx, store.Query{
		Table: "church_schedules",
		Where: []exp.Expression{store.StatusIs(string(lifecycle.StatusActive))},
		Order: []exp.OrderedExpression{goqu.C("start_time").Asc()},
	}, &rows)
	if err != nil {
		return nil, err
	}
	lifecycle.SortByWeekday(rows, func(s models.ChurchSchedule) string { return s.Day_Of_Week })
	return rows, nil
}

// Resources lists active downloadable resources grouped by category.
func (a *Aggregator) Resources(ctx context.Context) ([]models.Resource, error) {
	rows := []models.Resource{}
	err := a.store.Select(ctx, store.Query{
		Table: "resources",
		Where: []exp.Expression{store.StatusIs(string(lifecycle.StatusActive))},
		Order: []exp.OrderedExpression{goqu.C("category").Asc(), goqu.C("title").Asc()},
	}, &rows)
	return rows, err
}

var hundred = decimal.NewFromInt(100)

// CampaignProgress is current/goal as a percentage rounded to one place. It is
// not capped: a campaign can pass its goal.
func CampaignProgress(current, goal decimal.Decimal) decimal.Decimal {
	if !goal.IsPositive() {
		return decimal.Zero
	}
	return current.Div(goal).Mul(hundred).Round(1)
}

// Fundraising lists published campaigns in their window, newest first, with progress.
func (a *Aggregator) Fundraising(ctx context.Context) ([]models.FundraisingCampaign, error) {
	now := a.clock()
	rows := []models.FundraisingCampaign{}
	err := a.store.Select(ctx, store.Query{
		Table: "fundraising_campaigns",
		Where: []exp.Expression{
			store.StatusIs(string(lifecycle.StatusPublished)),
			store.WindowContains("start_date", "end_date", now),
		},
		Order: []exp.OrderedExpression{goqu.C("featured").Desc(), store.Newest()},
	}, &rows)
	if err != nil {
		return nil, err
	}
	rows = filter(rows, func(c models.FundraisingCampaign) bool {
		return lifecycle.IsVisible(c.Start_Date, c.End_Date, now)
	})
	for i := range rows {
		rows[i].Progress = CampaignProgress(rows[i].Current_Amount, rows[i].Goal_Amount)
	}
	return rows, nil
}
