package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GraceHarbor/lifecycle"
	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/services"
)

func announcementColumns() []string {
	return []string{
		"content", "created_at", "created_by", "end_date", "id", "link", "link_text",
		"priority", "show_in_banner", "start_date", "status", "title",
	}
}

func TestGetBanner(t *testing.T) {
	tests := []struct {
		name           string
		rows           func() *sqlmock.Rows
		expectedStatus int
		expectedID     float64
	}{
		{
			name:           "no banner",
			rows:           func() *sqlmock.Rows { return sqlmock.NewRows(announcementColumns()) },
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "highest priority wins",
			rows: func() *sqlmock.Rows {
				return sqlmock.NewRows(announcementColumns()).
					AddRow("Potluck Sunday", time.Now(), nil, nil, 1, nil, nil, 1, true, nil, "published", "Potluck").
					AddRow("Baptism service", time.Now(), nil, nil, 2, nil, nil, 5, true, nil, "published", "Baptisms")
			},
			expectedStatus: http.StatusOK,
			expectedID:     2,
		},
		{
			name: "expired banner is hidden",
			rows: func() *sqlmock.Rows {
				ended := time.Now().Add(-time.Hour)
				return sqlmock.NewRows(announcementColumns()).
					AddRow("Old news", time.Now(), nil, ended, 3, nil, nil, 9, true, nil, "published", "Old")
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			mock.ExpectQuery(`SELECT .* FROM "announcements" WHERE .*"status" = 'published'.*"show_in_banner" IS TRUE`).
				WillReturnRows(tt.rows())

			w := ServeRoute("GET", "/announcements/banner", GetBanner)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedID, decodeBody(t, w)["id"])
			} else {
				assert.Empty(t, w.Body.String())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetCurrentScriptureEmpty(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "scriptures" WHERE .*"status" = 'active'`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "verse_reference", "verse_text"}))

	w := ServeRoute("GET", "/scriptures/current", GetCurrentScripture)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCurrentDevotionalEmpty(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT .* FROM "devotionals" WHERE .*"status" = 'active'`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content"}))

	w := ServeRoute("GET", "/devotionals/current", GetCurrentDevotional)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLiveStreamStatusFromSnapshot(t *testing.T) {
	start := time.Now().UTC().Add(90 * time.Minute)
	next := models.LiveStream{ID: 8, LiveStreamForm: models.LiveStreamForm{Title: "Sunday service", Platform: "youtube", Start_Time: &start}, Status: lifecycle.StatusScheduled}

	svc := services.NewLiveStreamService(func(ctx context.Context) (models.LiveStreamStatus, error) {
		return models.LiveStreamStatus{Next: &next}, nil
	}, nil, nil)
	require.NoError(t, svc.Poll(context.Background()))
	services.SetLiveStreamService(svc)
	defer services.SetLiveStreamService(nil)

	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	c, w := SetupTestContext()
	GetLiveStreamStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["isLive"])
	assert.NotEmpty(t, body["countdown"])
	assert.NoError(t, mock.ExpectationsWereMet(), "the snapshot must be served without a query")
}

func TestGetLiveStreamStatusBeforeFirstPoll(t *testing.T) {
	services.SetLiveStreamService(nil)
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	streamColumns := []string{"created_at", "description", "end_time", "facebook_url", "id", "platform", "start_time", "status", "title", "youtube_url"}
	mock.ExpectQuery(`SELECT .* FROM "live_streams" WHERE .*'live'.* LIMIT 1`).
		WillReturnRows(sqlmock.NewRows(streamColumns))
	mock.ExpectQuery(`SELECT .* FROM "live_streams" WHERE .*'scheduled'.* LIMIT 1`).
		WillReturnRows(sqlmock.NewRows(streamColumns))

	c, w := SetupTestContext()
	GetLiveStreamStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["isLive"])
	assert.Nil(t, body["next"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	c, w := SetupTestContext()
	Ping(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
