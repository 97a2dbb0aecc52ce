package moderation

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/store"
)

// ErrResponseRequired is returned when a contact submission is completed
// without a response to send back.
var ErrResponseRequired = errors.New("a response is required to complete a contact submission")

// Entity describes one moderated record type: where it lives, which status
// family governs it, how its queue is ordered and which fields a transition stamps.
type Entity struct {
	Name   string
	Table  string
	Family lifecycle.Family
	Order  []exp.OrderedExpression

	newList func() interface{}
	stamp   func(req TransitionRequest, now time.Time) goqu.Record
	guard   func(ctx context.Context, s store.RecordStore, req TransitionRequest) error
	attach  func(ctx context.Context, s store.RecordStore, list interface{}) error
}

// NewList returns a pointer to an empty slice of the entity's row type.
func (e Entity) NewList() interface{} {
	return e.newList()
}

func approvalStamp(req TransitionRequest, now time.Time) goqu.Record {
	return goqu.Record{"approved_by": req.Actor, "approved_at": now}
}

func publishStamp(req TransitionRequest, now time.Time) goqu.Record {
	if req.Requested == lifecycle.StatusPublished {
		return goqu.Record{"published_at": now}
	}
	return nil
}

var registry = map[string]Entity{}

func register(e Entity) {
	if len(e.Order) == 0 {
		e.Order = []exp.OrderedExpression{store.Newest()}
	}
	registry[e.Name] = e
}

func init() {
	register(Entity{
		Name:    "prayer-requests",
		Table:   "prayers",
		Family:  lifecycle.Moderation,
		newList: func() interface{} { return &[]models.Prayer{} },
		stamp:   approvalStamp,
	})
	register(Entity{
		Name:    "donations",
		Table:   "donations",
		Family:  lifecycle.Moderation,
		newList: func() interface{} { return &[]models.Donation{} },
		stamp:   approvalStamp,
	})
	register(Entity{
		Name:    "meetings",
		Table:   "meetings",
		Family:  lifecycle.Moderation,
		Order:   []exp.OrderedExpression{goqu.C("meeting_date").Asc()},
		newList: func() interface{} { return &[]models.Meeting{} },
		stamp:   approvalStamp,
	})
	register(Entity{
		Name:    "connection-cards",
		Table:   "connection_cards",
		Family:  lifecycle.ConnectionCardFlow,
		newList: func() interface{} { return &[]models.ConnectionCard{} },
		stamp: func(req TransitionRequest, now time.Time) goqu.Record {
			if req.Requested == lifecycle.StatusContacted {
				return goqu.Record{"contacted_at": now}
			}
			return nil
		},
	})
	register(Entity{
		Name:    "contact-submissions",
		Table:   "contact_submissions",
		Family:  lifecycle.ContactFlow,
		newList: func() interface{} { return &[]models.ContactSubmission{} },
		stamp: func(req TransitionRequest, now time.Time) goqu.Record {
			rec := goqu.Record{"assigned_to": req.Actor}
			if req.Requested == lifecycle.StatusCompleted {
				rec["response"] = strings.TrimSpace(*req.Response)
				rec["responded_at"] = now
			}
			return rec
		},
		guard: func(_ context.Context, _ store.RecordStore, req TransitionRequest) error {
			if req.Requested == lifecycle.StatusCompleted && (req.Response == nil || strings.TrimSpace(*req.Response) == "") {
				return ErrResponseRequired
			}
			return nil
		},
	})
	register(Entity{
		Name:    "announcements",
		Table:   "announcements",
		Family:  lifecycle.AnnouncementPublication,
		newList: func() interface{} { return &[]models.Announcement{} },
		stamp:   publishStamp,
	})
	register(Entity{
		Name:    "events",
		Table:   "events",
		Family:  lifecycle.EventPublication,
		Order:   []exp.OrderedExpression{goqu.C("start_date").Asc()},
		newList: func() interface{} { return &[]models.Event{} },
		stamp:   publishStamp,
	})
	register(Entity{
		Name:    "fundraising",
		Table:   "fundraising_campaigns",
		Family:  lifecycle.EventPublication,
		newList: func() interface{} { return &[]models.FundraisingCampaign{} },
		stamp:   publishStamp,
	})
	register(Entity{
		Name:    "live-streams",
		Table:   "live_streams",
		Family:  lifecycle.LiveStreamFlow,
		Order:   []exp.OrderedExpression{goqu.C("start_time").Desc()},
		newList: func() interface{} { return &[]models.LiveStream{} },
	})
	register(Entity{
		Name:    "tithes",
		Table:   "tithe_offerings",
		Family:  lifecycle.TitheFlow,
		Order:   []exp.OrderedExpression{goqu.C("service_date").Desc()},
		newList: func() interface{} { return &[]models.TitheOffering{} },
		guard:   verificationGuard,
		attach: func(ctx context.Context, s store.RecordStore, list interface{}) error {
			collections := *list.(*[]models.TitheOffering)
			if err := AttachVerifications(ctx, s, collections); err != nil {
				return err
			}
			return AttachCategoryNames(ctx, s, collections)
		},
	})
	register(Entity{
		Name:    "newsletter",
		Table:   "newsletter_subscriptions",
		Family:  lifecycle.NewsletterFlow,
		newList: func() interface{} { return &[]models.NewsletterSubscription{} },
		stamp: func(req TransitionRequest, now time.Time) goqu.Record {
			return goqu.Record{"unsubscribed_at": now}
		},
	})
}

// Lookup returns the entity registered under a dashboard route name.
func Lookup(name string) (Entity, bool) {
	e, ok := registry[name]
	return e, ok
}

// Names lists every registered entity.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
