package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GraceHarbor/initializers"
	"github.com/GraceHarbor/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		// Small delay to allow goroutines (like notification emails) to complete
		time.Sleep(10 * time.Millisecond)
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

// SetAuthenticatedUser sets what CheckAuth leaves in the context.
func SetAuthenticatedUser(c *gin.Context, profile models.Profile) {
	c.Set("currentUser", profile)
	c.Set("tokenID", "test-token-id")
	c.Set("tokenExp", time.Now().Add(time.Hour))
}

// SetJSONBody replaces the request with method and target carrying body as JSON.
func SetJSONBody(c *gin.Context, method, target string, body interface{}) {
	raw, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON object: %v (%s)", err, w.Body.String())
	}
	return body
}

// SetTestConfig installs a signing secret and session lifetime, returning a restore func.
func SetTestConfig() func() {
	original := initializers.Cfg
	initializers.Cfg.Secret = "test-secret-key"
	initializers.Cfg.SessionTTL = time.Hour
	return func() { initializers.Cfg = original }
}

// ServeRoute runs handler behind a real engine so headers are flushed the way
// they are in production, including bodiless responses.
func ServeRoute(method, path string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}
