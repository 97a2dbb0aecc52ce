package aggregation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	a, mock := setupAggregator(t)

	mock.ExpectQuery(`SELECT .* FROM "prayers" ORDER BY "created_at" DESC LIMIT 5`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "created_at"}).
			AddRow(3, "Healing", "pending", testNow).
			AddRow(2, "Travel", "approved", testNow))
	mock.ExpectQuery(`SELECT .* FROM "church_schedules" WHERE \("status" = 'active'\) ORDER BY "start_time" ASC LIMIT 5`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "day_of_week", "start_time", "status"}).
			AddRow(1, "Bible study", "Wednesday", "19:00", "active").
			AddRow(2, "Worship", "Sunday", "10:00", "active"))

	counts := []struct {
		pattern string
		n       int
	}{
		{`FROM "prayers" WHERE \("status" = 'approved'\)`, 12},
		{`FROM "church_schedules" WHERE \("status" = 'active'\)`, 6},
		{`FROM "newsletter_subscriptions" WHERE \("status" = 'active'\)`, 40},
		{`FROM "newsletter_subscriptions" WHERE \(\("status" = 'active'\) AND \("created_at" >= '2024-04-05T10:00:00Z'\)\)`, 4},
		{`FROM "connection_cards" WHERE \("status" = 'new'\)`, 3},
		{`FROM "meetings" WHERE \("status" = 'approved'\)`, 2},
		{`FROM "tithe_offerings" WHERE \("status" = 'pending'\)`, 1},
	}
	for _, c := range counts {
		mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" ` + c.pattern).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(c.n))
	}

	mock.ExpectQuery(`SELECT "current_amount" FROM "donations" WHERE \(\("status" = 'completed'\) AND \("created_at" >= '2024-05-01T00:00:00Z'\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"current_amount"}).AddRow("150.25").AddRow("49.75"))

	ov, err := a.Overview(context.Background())
	require.NoError(t, err)

	assert.Len(t, ov.Recent_Prayers, 2)
	require.Len(t, ov.Upcoming_Schedule, 2)
	assert.Equal(t, "Sunday", ov.Upcoming_Schedule[0].Day_Of_Week)
	assert.Equal(t, int64(12), ov.Approved_Prayers)
	assert.Equal(t, int64(6), ov.Active_Schedules)
	assert.Equal(t, int64(40), ov.Active_Subscribers)
	assert.Equal(t, int64(4), ov.New_Subscribers)
	assert.Equal(t, int64(3), ov.New_Connection_Cards)
	assert.Equal(t, int64(2), ov.Approved_Meetings)
	assert.Equal(t, int64(1), ov.Pending_Tithe_Offerings)
	assert.True(t, decimal.NewFromInt(200).Equal(ov.Monthly_Donations))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverviewEmptyMonth(t *testing.T) {
	a, mock := setupAggregator(t)

	mock.ExpectQuery(`SELECT .* FROM "prayers"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT .* FROM "church_schedules"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))
	for i := 0; i < 7; i++ {
		mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	}
	mock.ExpectQuery(`FROM "donations"`).WillReturnRows(sqlmock.NewRows([]string{"current_amount"}))

	ov, err := a.Overview(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ov.Recent_Prayers)
	assert.NotNil(t, ov.Upcoming_Schedule)
	assert.True(t, ov.Monthly_Donations.IsZero())
}
