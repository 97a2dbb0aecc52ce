package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GraceHarbor/middlewares"
	"github.com/GraceHarbor/models"
)

func TestSignIn(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		userExists     bool
		expectLookup   bool
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			body:           models.SignIn{Email: "staff@graceharbor.church", Password: "password123"},
			userExists:     true,
			expectLookup:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           models.SignIn{Email: "staff@graceharbor.church", Password: "wrong"},
			userExists:     true,
			expectLookup:   true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown account",
			body:           models.SignIn{Email: "staff@graceharbor.church", Password: "password123"},
			expectLookup:   true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "mixed case email",
			body:           models.SignIn{Email: " Staff@GraceHarbor.church", Password: "password123"},
			userExists:     true,
			expectLookup:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing password",
			body:           map[string]string{"email": "staff@graceharbor.church"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := SetTestConfig()
			defer restore()
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectLookup {
				expectProfileLookup(mock, "staff@graceharbor.church", tt.userExists)
			}

			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/auth/signin", tt.body)

			SignIn(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				token, _ := body["token"].(string)
				claims, err := middlewares.ParseSessionToken(token, "test-secret-key")
				require.NoError(t, err)
				assert.Equal(t, "1", claims.Subject)
				assert.NotEmpty(t, claims.ID)
				assert.NotContains(t, w.Body.String(), "password")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		insertErr      error
		expectInsert   bool
		expectedStatus int
	}{
		{
			name:           "new account",
			body:           models.SignUp{Email: " New@GraceHarbor.church ", Password: "password123", Full_Name: "Lydia New"},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "email taken",
			body:           models.SignUp{Email: "new@graceharbor.church", Password: "password123", Full_Name: "Lydia New"},
			expectInsert:   true,
			insertErr:      &pq.Error{Code: "23505"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "padding is not an invalid email",
			body:           map[string]string{"email": "\tNEW@graceharbor.church  ", "password": "password123", "fullName": "Lydia New"},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed email",
			body:           models.SignUp{Email: "  not-an-email ", Password: "password123", Full_Name: "Lydia New"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           models.SignUp{Email: "new@graceharbor.church", Password: "short", Full_Name: "Lydia New"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := SetTestConfig()
			defer restore()
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectInsert {
				insert := mock.ExpectQuery(`INSERT INTO "profiles" \("email", "full_name", "password_hash"\) VALUES \('new@graceharbor.church', 'Lydia New', '\$2a\$.*'\) RETURNING "id"`)
				if tt.insertErr != nil {
					insert.WillReturnError(tt.insertErr)
				} else {
					insert.WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
				}
			}

			c, w := SetupTestContext()
			SetJSONBody(c, "POST", "/auth/signup", tt.body)

			SignUp(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, w)
				assert.NotEmpty(t, body["token"])
				require.IsType(t, map[string]interface{}{}, body["user"])
				user := body["user"].(map[string]interface{})
				assert.Equal(t, float64(3), user["id"])
				assert.Equal(t, "new@graceharbor.church", user["email"])
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSignOutDropsQueueFilters(t *testing.T) {
	resetBoards()
	boardFor(MockProfile().ID)

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockProfile())

	SignOut(c)

	assert.Equal(t, http.StatusOK, w.Code)
	boardsMu.Lock()
	_, kept := boards[MockProfile().ID]
	boardsMu.Unlock()
	assert.False(t, kept)
}

func TestGetSession(t *testing.T) {
	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockProfileWithPassword())

	GetSession(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "staff@graceharbor.church", user["email"])
	assert.NotContains(t, w.Body.String(), "$2a$")
}
