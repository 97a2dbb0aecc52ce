package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GraceHarbor/models"
)

func TestPublicSubmissions(t *testing.T) {
	tests := []struct {
		name           string
		handler        func(c *gin.Context)
		body           interface{}
		insertPattern  string
		expectedStatus int
	}{
		{
			name:    "connection card starts as new",
			handler: CreateConnectionCard,
			body: models.ConnectionCardCreate{
				First_Name: "Ana", Last_Name: "Lima", Email: "ana@example.com",
				Is_First_Time: true, Preferred_Contact: "email",
			},
			insertPattern:  `INSERT INTO "connection_cards" .*'new'.* RETURNING "id"`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "connection card with bad contact preference",
			handler:        CreateConnectionCard,
			body:           map[string]interface{}{"firstName": "Ana", "lastName": "Lima", "email": "ana@example.com", "preferredContact": "pigeon"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "contact message starts as new",
			handler: CreateContactSubmission,
			body: models.ContactCreate{
				Name: "Ana", Email: "ana@example.com", Subject: "Visit", Message: "Can someone visit?",
			},
			insertPattern:  `INSERT INTO "contact_submissions" \("assigned_to", "email", "message", "name", "phone", "responded_at", "response", "status", "subject"\) VALUES \(NULL, 'ana@example.com', 'Can someone visit\?', 'Ana', '', NULL, NULL, 'new', 'Visit'\)`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "contact message without subject",
			handler:        CreateContactSubmission,
			body:           map[string]interface{}{"name": "Ana", "email": "ana@example.com", "message": "hi"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "donation request is pending with nothing raised",
			handler: CreateDonationRequest,
			body: map[string]interface{}{
				"title": "Roof repair", "description": "The fellowship hall roof leaks",
				"goalAmount": "5000", "requesterName": "Ana", "requesterEmail": "ana@example.com",
			},
			insertPattern:  `INSERT INTO "donations" .*'0'.*'pending'.* RETURNING "id"`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "meeting request is pending",
			handler: CreateMeetingRequest,
			body: map[string]interface{}{
				"title": "Youth planning", "meetingDate": time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
				"organizerName": "Ana", "organizerEmail": "ana@example.com",
			},
			insertPattern:  `INSERT INTO "meetings" .*'\{\}'.*'pending'.* RETURNING "id"`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "meeting shorter than fifteen minutes",
			handler: CreateMeetingRequest,
			body: map[string]interface{}{
				"title": "Youth planning", "meetingDate": time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
				"durationMinutes": 5, "organizerName": "Ana", "organizerEmail": "ana@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.insertPattern != "" {
				mock.ExpectQuery(tt.insertPattern).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
			}

			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/", tt.body)

			tt.handler(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, float64(21), decodeBody(t, w)["id"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubscribeNewsletter(t *testing.T) {
	tests := []struct {
		name              string
		body              interface{}
		insertErr         error
		expectInsert      bool
		expectedStatus    int
		alreadySubscribed bool
	}{
		{
			name:           "new subscriber",
			body:           models.NewsletterSubscribe{Email: "Grace@Example.com"},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:              "already subscribed",
			body:              models.NewsletterSubscribe{Email: "grace@example.com"},
			expectInsert:      true,
			insertErr:         &pq.Error{Code: "23505"},
			expectedStatus:    http.StatusOK,
			alreadySubscribed: true,
		},
		{
			name:           "invalid email",
			body:           models.NewsletterSubscribe{Email: "grace"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectInsert {
				insert := mock.ExpectQuery(`INSERT INTO "newsletter_subscriptions" \("email", "source", "status", "unsubscribed_at"\) VALUES \('grace@example.com', 'website', 'active', NULL\) RETURNING "id"`)
				if tt.insertErr != nil {
					insert.WillReturnError(tt.insertErr)
				} else {
					insert.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
				}
			}

			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/newsletter/subscribe", tt.body)

			SubscribeNewsletter(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusBadRequest {
				assert.Equal(t, tt.alreadySubscribed, decodeBody(t, w)["alreadySubscribed"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUnsubscribeNewsletter(t *testing.T) {
	columns := []string{"created_at", "email", "id", "source", "status", "unsubscribed_at"}

	tests := []struct {
		name           string
		stored         string
		expectUpdate   bool
		expectedStatus int
		expectMessage  string
	}{
		{
			name:           "active subscription",
			stored:         "active",
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
			expectMessage:  "You have been unsubscribed.",
		},
		{
			name:           "already unsubscribed",
			stored:         "unsubscribed",
			expectedStatus: http.StatusOK,
			expectMessage:  "You're already unsubscribed.",
		},
		{
			name:           "unknown address",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			rows := sqlmock.NewRows(columns)
			if tt.stored != "" {
				rows.AddRow(time.Now(), "grace@example.com", 4, "website", tt.stored, nil)
			}
			mock.ExpectQuery(`SELECT .* FROM "newsletter_subscriptions" WHERE \("email" = 'grace@example.com'\) LIMIT 1`).
				WillReturnRows(rows)
			if tt.expectUpdate {
				mock.ExpectExec(`UPDATE "newsletter_subscriptions" SET "status"='unsubscribed',"unsubscribed_at"='.*' WHERE \("id" = 4\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/newsletter/unsubscribe", map[string]string{"email": "grace@example.com"})

			UnsubscribeNewsletter(c)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectMessage != "" {
				assert.Equal(t, tt.expectMessage, decodeBody(t, w)["message"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
