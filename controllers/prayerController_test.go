package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GraceHarbor/models"
	"github.com/GraceHarbor/moderation"
)

func resetBoards() {
	boardsMu.Lock()
	defer boardsMu.Unlock()
	boards = map[int]*moderation.Board{}
}

func prayerRow(rows *sqlmock.Rows, id int, status string, public, wall bool, count int) *sqlmock.Rows {
	return rows.AddRow(nil, nil, "", "Naomi", "Please pray for my family", time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		id, public, count, wall, status, "Family")
}

func TestCreatePrayer(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		mockInsert     bool
		expectedStatus int
	}{
		{
			name: "public wall prayer is stored as pending",
			body: models.PrayerCreate{
				Title: "Family", Content: "Please pray for my family", Author_Name: "Naomi",
				Is_Public: true, Show_On_Wall: true,
			},
			mockInsert:     true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing content",
			body:           map[string]interface{}{"title": "Family", "authorName": "Naomi"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid author email",
			body:           map[string]interface{}{"title": "t", "content": "c", "authorName": "a", "authorEmail": "nope"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.mockInsert {
				mock.ExpectQuery(`INSERT INTO "prayers" .*'pending'.* RETURNING "id"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
			}

			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/prayers", tt.body)

			CreatePrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, w)
				assert.Equal(t, float64(11), body["id"])
				assert.Equal(t, "pending", body["status"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// A submitted prayer reaches the wall only once approved; a rejected prayer
// never does, whatever its visibility flags say.
func TestPrayerWallModerationFlow(t *testing.T) {
	tests := []struct {
		decision     string
		stored       string
		expectOnWall bool
	}{
		{decision: "approved", stored: "approved", expectOnWall: true},
		{decision: "rejected", stored: "rejected", expectOnWall: false},
	}

	for _, tt := range tests {
		t.Run(tt.decision, func(t *testing.T) {
			resetBoards()
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			// submit
			mock.ExpectQuery(`INSERT INTO "prayers"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/prayers", models.PrayerCreate{
				Title: "Family", Content: "Please pray for my family", Author_Name: "Naomi",
				Is_Public: true, Show_On_Wall: true,
			})
			CreatePrayer(c)
			require.Equal(t, http.StatusCreated, w.Code)

			// moderate
			mock.ExpectQuery(`SELECT "id", "status" FROM "prayers" WHERE \("id" = 1\) LIMIT 1`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(1, "pending"))
			mock.ExpectExec(`UPDATE "prayers" SET "approved_at"=.*,"approved_by"=1,"status"='` + tt.decision + `' WHERE \("id" = 1\)`).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectQuery(`SELECT .* FROM "prayers" ORDER BY "created_at" DESC`).
				WillReturnRows(prayerRow(sqlmock.NewRows(prayerColumns()), 1, tt.stored, true, true, 0))

			c, w = SetupTestContext()
			SetAuthenticatedUser(c, MockProfile())
			c.Params = []gin.Param{{Key: "entity", Value: "prayer-requests"}, {Key: "id", Value: "1"}}
			SetJSONBody(c, "PATCH", "/dashboard/prayer-requests/1/status", models.StatusChange{Status: tt.decision})
			ChangeStatus(c)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.decision, decodeBody(t, w)["status"])

			// public wall
			mock.ExpectQuery(`SELECT .* FROM "prayers" WHERE \(\("is_public" IS TRUE\) AND \("show_on_wall" IS TRUE\) AND \("status" = 'approved'\)\) ORDER BY "created_at" DESC`).
				WillReturnRows(prayerRow(sqlmock.NewRows(prayerColumns()), 1, tt.stored, true, true, 0))

			c, w = SetupTestContext()
			GetPrayerWall(c)
			require.Equal(t, http.StatusOK, w.Code)

			var wall []models.Prayer
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wall))
			if tt.expectOnWall {
				require.Len(t, wall, 1)
				assert.Equal(t, 1, wall[0].ID)
			} else {
				assert.Empty(t, wall)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPrayForPrayer(t *testing.T) {
	tests := []struct {
		name           string
		prayerID       string
		status         string
		existing       int
		insertErr      error
		expectUpdate   bool
		expectedStatus int
		expectCounted  bool
	}{
		{
			name:           "first prayer counts",
			prayerID:       "3",
			status:         "approved",
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
			expectCounted:  true,
		},
		{
			name:           "same user again is not counted",
			prayerID:       "3",
			status:         "approved",
			existing:       1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "concurrent duplicate caught by unique constraint",
			prayerID:       "3",
			status:         "approved",
			insertErr:      &pq.Error{Code: "23505"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "pending prayer is not on the wall",
			prayerID:       "3",
			status:         "pending",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			prayerID:       "abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.status != "" {
				mock.ExpectQuery(`SELECT .* FROM "prayers" WHERE \("id" = 3\) LIMIT 1`).
					WillReturnRows(prayerRow(sqlmock.NewRows(prayerColumns()), 3, tt.status, true, true, 4))
			}
			if tt.status == "approved" {
				mock.ExpectQuery(`SELECT COUNT\(\*\) AS "count" FROM "prayer_interactions" WHERE \(\("prayer_id" = 3\) AND \("user_id" = 1\)\)`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.existing))
				if tt.existing == 0 {
					insert := mock.ExpectQuery(`INSERT INTO "prayer_interactions" \("prayer_id", "user_id"\) VALUES \(3, 1\)`)
					if tt.insertErr != nil {
						insert.WillReturnError(tt.insertErr)
					} else {
						insert.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(20))
					}
				}
			}
			if tt.expectUpdate {
				mock.ExpectExec(`UPDATE "prayers" SET "prayer_count"="prayer_count" \+ 1 WHERE \("id" = 3\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockProfile())
			c.Params = []gin.Param{{Key: "prayer_id", Value: tt.prayerID}}

			PrayForPrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				assert.Equal(t, tt.expectCounted, body["counted"])
				if tt.expectCounted {
					assert.Equal(t, float64(5), body["prayerCount"])
				} else {
					assert.Equal(t, float64(4), body["prayerCount"])
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetPrayerWallStats(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	for _, n := range []int{3, 12, 7, 2} {
		mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	}

	c, w := SetupTestContext()
	GetPrayerWallStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["prayedToday"])
	assert.Equal(t, float64(12), body["totalPrayers"])
	assert.Equal(t, float64(7), body["prayerWarriors"])
	assert.Equal(t, float64(2), body["answered"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
